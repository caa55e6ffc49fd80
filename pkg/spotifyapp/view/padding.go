package view

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// SymmetricPadding creates a Padding with one horizontal and one vertical value.
func SymmetricPadding(horizontal, vertical int) Padding {
	return Padding{
		Top:    vertical,
		Right:  horizontal,
		Bottom: vertical,
		Left:   horizontal,
	}
}

// Horizontal returns the sum of the left and right padding.
func (p Padding) Horizontal() int {
	return p.Left + p.Right
}

// Vertical returns the sum of the top and bottom padding.
func (p Padding) Vertical() int {
	return p.Top + p.Bottom
}
