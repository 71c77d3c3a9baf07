package palette

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	p := Default()
	require.NotEmpty(t, p.Presets())

	gain, ok := p.Find("gain")
	require.True(t, ok)
	assert.Equal(t, "verticalslider", gain.Kind)

	_, ok = p.Find("nonexistent")
	assert.False(t, ok)

	// Every embedded preset references a concrete kind.
	for _, preset := range p.Presets() {
		assert.True(t, models.ParseKind(preset.Kind).Known(), preset.Key)
	}
}

func TestBuildOverlaysPresetFields(t *testing.T) {
	p := Default()
	gain, _ := p.Find("gain")

	d := gain.Build()
	assert.Equal(t, models.KindVerticalSlider, d.Type)
	assert.Equal(t, "Gain", d.Text)
	assert.Equal(t, -60.0, d.MinValue)
	assert.Equal(t, 12.0, d.MaxValue)
	assert.Equal(t, 0.0, d.DefaultValue)
	// Factory defaults fill what the preset leaves out.
	assert.Equal(t, 30.0, d.Width)
	assert.Equal(t, 120.0, d.Height)
	assert.True(t, d.Visible)
}

func TestBuildComboPresetSelectsFirstOption(t *testing.T) {
	p := Default()
	filter, ok := p.Find("filter-type")
	require.True(t, ok)

	d := filter.Build()
	assert.Equal(t, models.KindComboBox, d.Type)
	assert.Equal(t, []string{"Low Pass", "High Pass", "Band Pass", "Notch"}, d.Options)
	require.NotNil(t, d.SelectedIndex)
	assert.Equal(t, 0, *d.SelectedIndex)
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	_, err := Load(strings.NewReader("presets:\n  - label: NoKey\n    kind: knob\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("presets:\n  - key: x\n    kind: warpdrive\n"))
	assert.Error(t, err)

	dup := `
presets:
  - key: x
    kind: knob
  - key: x
    kind: button
`
	_, err = Load(strings.NewReader(dup))
	assert.Error(t, err)
}

func TestKeysAreSorted(t *testing.T) {
	p, err := Load(strings.NewReader("presets:\n  - {key: zz, kind: knob}\n  - {key: aa, kind: button}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "zz"}, p.Keys())
	// Presets keep catalog order.
	presets := p.Presets()
	assert.Equal(t, "zz", presets[0].Key)
}
