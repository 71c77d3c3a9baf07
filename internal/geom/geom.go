// Package geom provides the pure geometry and color helpers shared by the
// renderer and the canvas session.
package geom

import "math"

// Clamp constrains v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize maps value within [min, max] to [0, 1].
// A degenerate range (max <= min) or a non-finite ratio yields exactly 0 so
// that no NaN or Inf ever reaches a pixel coordinate.
func Normalize(value, min, max float64) float64 {
	span := max - min
	if span <= 0 {
		return 0
	}
	ratio := (value - min) / span
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return Clamp(ratio, 0, 1)
}

// PointInRect reports whether point (px, py) lies within the rectangle with
// top-left (x, y) and the given width and height. Edges are inclusive.
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
