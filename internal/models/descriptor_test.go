package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorContains(t *testing.T) {
	d := &Descriptor{X: 10, Y: 20, Width: 100, Height: 50}
	assert.True(t, d.Contains(10, 20))
	assert.True(t, d.Contains(110, 70))
	assert.True(t, d.Contains(60, 45))
	assert.False(t, d.Contains(9.99, 45))
	assert.False(t, d.Contains(60, 70.01))
}

func TestSelectedOption(t *testing.T) {
	one := 1
	d := &Descriptor{Options: []string{"Low Pass", "High Pass"}, SelectedIndex: &one}
	opt, ok := d.SelectedOption()
	assert.True(t, ok)
	assert.Equal(t, "High Pass", opt)

	d.SelectedIndex = nil
	_, ok = d.SelectedOption()
	assert.False(t, ok)

	out := 7
	d.SelectedIndex = &out
	_, ok = d.SelectedOption()
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	zero := 0
	d := &Descriptor{
		ID:            "a",
		Type:          KindComboBox,
		Options:       []string{"one", "two"},
		SelectedIndex: &zero,
	}

	c := d.Clone("b")
	assert.Equal(t, "b", c.ID)
	assert.Equal(t, d.Options, c.Options)

	c.Options[0] = "changed"
	*c.SelectedIndex = 1
	assert.Equal(t, "one", d.Options[0])
	assert.Equal(t, 0, *d.SelectedIndex)
}
