package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindKnob, ParseKind("knob"))
	assert.Equal(t, KindKnob, ParseKind("  Knob "))
	assert.Equal(t, KindHorizontalSlider, ParseKind("HorizontalSlider"))
	assert.Equal(t, KindUnknown, ParseKind("wobble"))
	assert.Equal(t, KindUnknown, ParseKind(""))
}

func TestKindKnown(t *testing.T) {
	for _, k := range KnownKinds() {
		assert.True(t, k.Known(), string(k))
	}
	assert.False(t, KindUnknown.Known())
	assert.False(t, Kind("wobble").Known())
}

func TestKindHasRange(t *testing.T) {
	assert.True(t, KindHorizontalSlider.HasRange())
	assert.True(t, KindVerticalSlider.HasRange())
	assert.True(t, KindKnob.HasRange())
	assert.False(t, KindButton.HasRange())
	assert.False(t, KindMeter.HasRange())
	assert.False(t, KindUnknown.HasRange())
}
