// Package component constructs control descriptors with kind-appropriate
// defaults. Construction is pure: no session state is touched.
package component

import (
	"github.com/sblake94/plugin-gui-designer/internal/geom"
	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// Neutral styling applied to every kind unless overridden below.
const (
	defaultColor     = "#CCCCCC"
	defaultTextColor = "#000000"
	defaultFontSize  = 12
	defaultThumb     = "#4A90D9"
)

// DefaultSize returns the canonical width and height for a kind. Unknown
// kinds get a generic box.
func DefaultSize(kind models.Kind) (w, h float64) {
	switch kind {
	case models.KindHorizontalSlider:
		return 120, 30
	case models.KindVerticalSlider:
		return 30, 120
	case models.KindKnob:
		return 60, 60
	case models.KindButton:
		return 80, 30
	case models.KindToggle:
		return 60, 30
	case models.KindLabel:
		return 100, 20
	case models.KindTextBox:
		return 100, 25
	case models.KindMeter:
		return 20, 100
	case models.KindComboBox:
		return 120, 25
	default:
		return 100, 30
	}
}

// Create builds a descriptor of the given kind at (x, y) with default size,
// styling and kind-specific parameters. An unknown kind yields a generic
// descriptor with neutral styling and no extras.
func Create(kind models.Kind, id string, x, y float64) *models.Descriptor {
	w, h := DefaultSize(kind)
	d := &models.Descriptor{
		ID:        id,
		Type:      kind,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		Text:      kind.DisplayName(),
		Color:     defaultColor,
		TextColor: defaultTextColor,
		FontSize:  defaultFontSize,
		Visible:   true,
		Enabled:   true,
	}

	switch kind {
	case models.KindHorizontalSlider, models.KindVerticalSlider, models.KindKnob:
		d.MinValue = 0
		d.MaxValue = 1
		d.DefaultValue = 0.5
		d.ThumbColor = defaultThumb
	case models.KindButton:
		d.Pressed = false
	case models.KindToggle:
		d.AltColor = "#DDDDDD"
	case models.KindLabel:
		d.Color = geom.ColorTransparent
		d.Align = models.AlignCenter
	case models.KindTextBox:
		d.Color = "#FFFFFF"
		d.Placeholder = "Enter text..."
	case models.KindMeter:
		d.Color = "#000000"
		d.Level = 0
	case models.KindComboBox:
		d.Color = "#FFFFFF"
		d.Options = []string{"Option 1", "Option 2", "Option 3"}
		selected := 0
		d.SelectedIndex = &selected
	}

	return d
}
