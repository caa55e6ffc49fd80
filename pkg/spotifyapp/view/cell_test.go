package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSetNotifiesOnChange(t *testing.T) {
	c := NewCell(1)
	var got []int
	c.Subscribe(func(v int) { got = append(got, v) })

	assert.True(t, c.Set(2))
	assert.False(t, c.Set(2))
	assert.True(t, c.Update(func(v int) int { return v * 10 }))

	assert.Equal(t, 20, c.Get())
	assert.Equal(t, []int{2, 20}, got)
}

func TestCellUnsubscribe(t *testing.T) {
	c := NewCell("a")
	var order []string
	c.Subscribe(func(v string) { order = append(order, "first:"+v) })
	stop := c.Subscribe(func(v string) { order = append(order, "second:"+v) })

	c.Set("b")
	stop()
	c.Set("c")

	assert.Equal(t, []string{"first:b", "second:b", "first:c"}, order)
}
