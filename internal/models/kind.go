package models

import "strings"

// Kind identifies one of the closed set of control kinds a descriptor can
// take. The zero-ish KindUnknown is an explicit member: unrecognized kind
// tags degrade to it instead of failing.
type Kind string

const (
	KindHorizontalSlider Kind = "horizontalslider"
	KindVerticalSlider   Kind = "verticalslider"
	KindKnob             Kind = "knob"
	KindButton           Kind = "button"
	KindToggle           Kind = "toggle"
	KindLabel            Kind = "label"
	KindTextBox          Kind = "textbox"
	KindMeter            Kind = "meter"
	KindComboBox         Kind = "combobox"
	KindUnknown          Kind = "unknown"
)

// KnownKinds returns the nine concrete control kinds in toolbox order.
func KnownKinds() []Kind {
	return []Kind{
		KindHorizontalSlider,
		KindVerticalSlider,
		KindKnob,
		KindButton,
		KindToggle,
		KindLabel,
		KindTextBox,
		KindMeter,
		KindComboBox,
	}
}

// ParseKind normalizes a kind tag. Unrecognized tags map to KindUnknown.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindHorizontalSlider, KindVerticalSlider, KindKnob, KindButton,
		KindToggle, KindLabel, KindTextBox, KindMeter, KindComboBox:
		return k
	default:
		return KindUnknown
	}
}

// Known reports whether k is one of the nine concrete kinds.
func (k Kind) Known() bool {
	return k != KindUnknown && k == ParseKind(string(k))
}

// HasRange reports whether the kind carries a min/max/default value range.
func (k Kind) HasRange() bool {
	switch k {
	case KindHorizontalSlider, KindVerticalSlider, KindKnob:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable name used as the default descriptor
// text for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindHorizontalSlider:
		return "Horizontal Slider"
	case KindVerticalSlider:
		return "Vertical Slider"
	case KindKnob:
		return "Knob"
	case KindButton:
		return "Button"
	case KindToggle:
		return "Toggle"
	case KindLabel:
		return "Label"
	case KindTextBox:
		return "Text Box"
	case KindMeter:
		return "Meter"
	case KindComboBox:
		return "Combo Box"
	default:
		return "Component"
	}
}
