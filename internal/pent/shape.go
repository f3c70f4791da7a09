package pent

import (
	"strings"
)

// Shape is a rectangular glyph drawing of a piece on a blank background:
// one string per row, spaces for blanks, any other character for wood.
// All rows must have equal length.
type Shape []string

func (s Shape) rectangular() bool {
	if len(s) == 0 {
		return false
	}
	for _, row := range s {
		if len(row) != len(s[0]) {
			return false
		}
	}
	return true
}

func (s Shape) cellCount() int {
	n := 0
	for _, row := range s {
		for _, c := range row {
			if c != ' ' {
				n++
			}
		}
	}
	return n
}

// pivoted turns rows into columns and vice versa.
func (s Shape) pivoted() Shape {
	if len(s) == 0 {
		return nil
	}
	out := make(Shape, len(s[0]))
	for col := range s[0] {
		var b strings.Builder
		for row := range s {
			b.WriteByte(s[row][col])
		}
		out[col] = b.String()
	}
	return out
}

// mirrored reflects the shape about its vertical axis.
func (s Shape) mirrored() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		b := []byte(row)
		for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
			b[l], b[r] = b[r], b[l]
		}
		out[i] = string(b)
	}
	return out
}

// rotated returns the shape turned 90 degrees clockwise: transpose, then
// mirror each row. Applying it four times yields the original shape.
func (s Shape) rotated() Shape {
	return s.pivoted().mirrored()
}

func (s Shape) rotations() []Shape {
	r1 := s.rotated()
	r2 := r1.rotated()
	r3 := r2.rotated()
	return []Shape{s, r1, r2, r3}
}

func (s Shape) flips() []Shape {
	return []Shape{s, s.mirrored()}
}

// extended pads the right and bottom edges out to a full w x h field,
// anchoring the shape at the top left. Returns nil when the shape does
// not fit the field in this orientation.
func (s Shape) extended(w, h int) Shape {
	if len(s) > h || len(s) > 0 && len(s[0]) > w {
		return nil
	}
	out := make(Shape, 0, h)
	for _, row := range s {
		out = append(out, row+strings.Repeat(" ", w-len(row)))
	}
	for len(out) < h {
		out = append(out, strings.Repeat(" ", w))
	}
	return out
}

func blankRow(row string) bool {
	return strings.TrimSpace(row) == ""
}

// rowSlides returns the field and every copy of it shifted downward, for
// as long as the bottom row is still blank and can wrap to the top.
func rowSlides(field Shape) []Shape {
	result := []Shape{field}
	for blankRow(field[len(field)-1]) {
		shifted := make(Shape, 0, len(field))
		shifted = append(shifted, field[len(field)-1])
		shifted = append(shifted, field[:len(field)-1]...)
		field = shifted
		result = append(result, field)
	}
	return result
}

func colSlides(field Shape) []Shape {
	pivoted := rowSlides(field.pivoted())
	result := make([]Shape, len(pivoted))
	for i, p := range pivoted {
		result[i] = p.pivoted()
	}
	return result
}

// translations enumerates every position of the shape inside a w x h
// field, as full-field drawings. Empty when the shape does not fit.
func (s Shape) translations(w, h int) []Shape {
	topLeft := s.extended(w, h)
	if topLeft == nil {
		return nil
	}
	var result []Shape
	for _, row := range rowSlides(topLeft) {
		result = append(result, colSlides(row)...)
	}
	return result
}

// String draws the shape in a box, the way it is shown to players.
func (s Shape) String() string {
	width := 0
	if len(s) > 0 {
		width = len(s[0])
	}
	border := "+" + strings.Repeat("-", width) + "+"
	var b strings.Builder
	b.WriteString(border + "\n")
	for _, row := range s {
		b.WriteString("|" + row + "|\n")
	}
	b.WriteString(border)
	return b.String()
}
