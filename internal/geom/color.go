package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorTransparent is the sentinel color value meaning "no fill".
const ColorTransparent = "transparent"

// ParseHex parses a "#RRGGBB" color string. The boolean result is false for
// anything that is not a well-formed six-digit hex color.
func ParseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8 & 0xFF), uint8(v & 0xFF), true
}

// FormatHex formats RGB channels as a "#RRGGBB" string.
func FormatHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Darken scales each channel of a hex color towards black by amount in
// [0, 1]. Malformed colors are returned unchanged.
func Darken(hex string, amount float64) string {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	f := Clamp(1-amount, 0, 1)
	return FormatHex(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

// Mix linearly interpolates between two hex colors. t=0 yields a, t=1 yields
// b. If either color is malformed, a is returned.
func Mix(a, b string, t float64) string {
	ar, ag, ab, ok := ParseHex(a)
	if !ok {
		return a
	}
	br, bg, bb, ok := ParseHex(b)
	if !ok {
		return a
	}
	t = Clamp(t, 0, 1)
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return FormatHex(lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}
