package dom

// Rect is an axis-aligned box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies in [X, X+Width) x [Y, Y+Height).
func (r Rect) Contains(x, y float64) bool {
	return r.X <= x && x < r.X+r.Width &&
		r.Y <= y && y < r.Y+r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
