// Package palette provides named control presets for common audio plugin
// parameters. A preset pairs a component kind with pre-filled text, range
// and styling so a gain slider or bypass toggle drops in ready-made.
package palette

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sblake94/plugin-gui-designer/internal/component"
	"github.com/sblake94/plugin-gui-designer/internal/models"
)

//go:embed presets.yaml
var defaultPresets []byte

// Preset describes one palette entry.
type Preset struct {
	Key          string   `yaml:"key" json:"key"`
	Label        string   `yaml:"label" json:"label"`
	Kind         string   `yaml:"kind" json:"kind"`
	Text         string   `yaml:"text" json:"text"`
	MinValue     *float64 `yaml:"minValue" json:"minValue,omitempty"`
	MaxValue     *float64 `yaml:"maxValue" json:"maxValue,omitempty"`
	DefaultValue *float64 `yaml:"defaultValue" json:"defaultValue,omitempty"`
	Color        string   `yaml:"color" json:"color,omitempty"`
	ThumbColor   string   `yaml:"thumbColor" json:"thumbColor,omitempty"`
	Toggled      *bool    `yaml:"toggled" json:"toggled,omitempty"`
	Options      []string `yaml:"options" json:"options,omitempty"`
}

// Palette is an immutable preset catalog keyed by preset key.
type Palette struct {
	presets map[string]Preset
	order   []string
}

// Load reads a preset catalog from YAML.
func Load(r io.Reader) (*Palette, error) {
	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	p := &Palette{presets: make(map[string]Preset, len(doc.Presets))}
	for _, preset := range doc.Presets {
		if preset.Key == "" {
			return nil, fmt.Errorf("palette preset %q has no key", preset.Label)
		}
		if _, dup := p.presets[preset.Key]; dup {
			return nil, fmt.Errorf("duplicate palette preset key %q", preset.Key)
		}
		if !models.ParseKind(preset.Kind).Known() {
			return nil, fmt.Errorf("palette preset %q has unknown kind %q", preset.Key, preset.Kind)
		}
		p.presets[preset.Key] = preset
		p.order = append(p.order, preset.Key)
	}
	return p, nil
}

// Default returns the built-in catalog.
func Default() *Palette {
	p, err := Load(bytes.NewReader(defaultPresets))
	if err != nil {
		// The embedded catalog is fixed at build time.
		panic(fmt.Sprintf("palette: embedded presets invalid: %v", err))
	}
	return p
}

// Find returns a preset by key.
func (p *Palette) Find(key string) (Preset, bool) {
	preset, ok := p.presets[key]
	return preset, ok
}

// Presets returns all presets in catalog order.
func (p *Palette) Presets() []Preset {
	out := make([]Preset, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.presets[key])
	}
	return out
}

// Keys returns the sorted preset keys.
func (p *Palette) Keys() []string {
	keys := append([]string(nil), p.order...)
	sort.Strings(keys)
	return keys
}

// Build constructs a descriptor from the preset, starting from the kind's
// factory defaults and overlaying the preset fields. Position and id are
// left for the session to assign on placement.
func (p Preset) Build() *models.Descriptor {
	d := component.Create(models.ParseKind(p.Kind), "", 0, 0)
	if p.Text != "" {
		d.Text = p.Text
	}
	if p.MinValue != nil {
		d.MinValue = *p.MinValue
	}
	if p.MaxValue != nil {
		d.MaxValue = *p.MaxValue
	}
	if p.DefaultValue != nil {
		d.DefaultValue = *p.DefaultValue
	}
	if p.Color != "" {
		d.Color = p.Color
	}
	if p.ThumbColor != "" {
		d.ThumbColor = p.ThumbColor
	}
	if p.Toggled != nil {
		d.Toggled = *p.Toggled
	}
	if len(p.Options) > 0 {
		d.Options = append([]string(nil), p.Options...)
		zero := 0
		d.SelectedIndex = &zero
	}
	return d
}
