package export

import (
	"encoding/xml"
	"fmt"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

type xmlLayout struct {
	XMLName    xml.Name      `xml:"gui_layout"`
	Canvas     xmlCanvas     `xml:"canvas"`
	Components xmlComponents `xml:"components"`
}

type xmlCanvas struct {
	Width      float64 `xml:"width,attr"`
	Height     float64 `xml:"height,attr"`
	Background string  `xml:"background,attr,omitempty"`
}

type xmlComponents struct {
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	Type       string        `xml:"type,attr"`
	ID         string        `xml:"id,attr"`
	Position   xmlPosition   `xml:"position"`
	Size       xmlSize       `xml:"size"`
	Text       string        `xml:"text"`
	Range      *xmlRange     `xml:"range,omitempty"`
	Appearance xmlAppearance `xml:"appearance"`
}

type xmlPosition struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

type xmlSize struct {
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type xmlRange struct {
	Min     float64 `xml:"min,attr"`
	Max     float64 `xml:"max,attr"`
	Default float64 `xml:"default,attr"`
}

type xmlAppearance struct {
	Color     string `xml:"color,attr"`
	TextColor string `xml:"text_color,attr"`
	FontSize  int    `xml:"font_size,attr"`
}

// Markup renders the generic XML tree: a gui_layout root holding the canvas
// attributes and one component element per descriptor in insertion order,
// with range elements only on range-bearing kinds.
func Markup(canvas models.CanvasConfig, components []*models.Descriptor) (string, error) {
	layout := xmlLayout{
		Canvas: xmlCanvas{
			Width:      canvas.Width,
			Height:     canvas.Height,
			Background: canvas.BackgroundColor,
		},
	}

	for _, d := range components {
		comp := xmlComponent{
			Type:     string(d.Type),
			ID:       d.ID,
			Position: xmlPosition{X: d.X, Y: d.Y},
			Size:     xmlSize{Width: d.Width, Height: d.Height},
			Text:     d.Text,
			Appearance: xmlAppearance{
				Color:     d.Color,
				TextColor: d.TextColor,
				FontSize:  d.FontSize,
			},
		}
		if d.Type.HasRange() {
			comp.Range = &xmlRange{Min: d.MinValue, Max: d.MaxValue, Default: d.DefaultValue}
		}
		layout.Components.Components = append(layout.Components.Components, comp)
	}

	body, err := xml.MarshalIndent(layout, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding markup layout: %w", err)
	}
	return xml.Header + string(body) + "\n", nil
}
