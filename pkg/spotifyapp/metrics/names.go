package metrics

import (
	"fmt"
	"strings"
)

// typeName returns the unqualified, lower-cased type name of v.
func typeName(v any) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}
