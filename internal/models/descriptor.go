package models

import "github.com/sblake94/plugin-gui-designer/internal/geom"

// Text alignment values for label descriptors.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Descriptor is one placed control instance on the canvas. Fields beyond the
// common block are kind-specific and omitted from serialized documents when
// unused; dispatch on Type is exhaustive over the Kind enum.
type Descriptor struct {
	ID        string  `json:"id"`
	Type      Kind    `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Text      string  `json:"text"`
	Color     string  `json:"color"`
	TextColor string  `json:"textColor"`
	FontSize  int     `json:"fontSize"`
	Visible   bool    `json:"visible"`
	Enabled   bool    `json:"enabled"`

	// Range-bearing kinds (sliders and knob).
	MinValue     float64 `json:"minValue,omitempty"`
	MaxValue     float64 `json:"maxValue,omitempty"`
	DefaultValue float64 `json:"defaultValue,omitempty"`
	ThumbColor   string  `json:"thumbColor,omitempty"`

	// Button.
	Pressed bool `json:"pressed,omitempty"`

	// Toggle.
	Toggled  bool   `json:"toggled,omitempty"`
	AltColor string `json:"altColor,omitempty"`

	// Meter. Level is in [0, 1].
	Level float64 `json:"level,omitempty"`

	// ComboBox. A nil SelectedIndex means no option is selected.
	Options       []string `json:"options,omitempty"`
	SelectedIndex *int     `json:"selectedIndex,omitempty"`

	// Label.
	Align string `json:"align,omitempty"`

	// TextBox.
	Placeholder string `json:"placeholder,omitempty"`
}

// Contains reports whether the canvas-local point (px, py) lies within the
// descriptor's bounds.
func (d *Descriptor) Contains(px, py float64) bool {
	return geom.PointInRect(px, py, d.X, d.Y, d.Width, d.Height)
}

// NormalizedValue maps DefaultValue into [0, 1] over the descriptor's range,
// using the shared degenerate-range rule.
func (d *Descriptor) NormalizedValue() float64 {
	return geom.Normalize(d.DefaultValue, d.MinValue, d.MaxValue)
}

// SelectedOption returns the selected combo box option, or ok=false when no
// valid option is selected.
func (d *Descriptor) SelectedOption() (string, bool) {
	if d.SelectedIndex == nil {
		return "", false
	}
	i := *d.SelectedIndex
	if i < 0 || i >= len(d.Options) {
		return "", false
	}
	return d.Options[i], true
}

// Clone returns a deep copy of the descriptor under a new id.
func (d *Descriptor) Clone(newID string) *Descriptor {
	c := *d
	c.ID = newID
	if d.Options != nil {
		c.Options = append([]string(nil), d.Options...)
	}
	if d.SelectedIndex != nil {
		i := *d.SelectedIndex
		c.SelectedIndex = &i
	}
	return &c
}
