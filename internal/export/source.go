// Package export contains the pure transforms from a designer layout to its
// three textual representations: a generated C++ source listing, a JSON
// interchange document, and a generic XML markup tree. All exporters are
// deterministic: re-exporting an unmodified layout yields identical bytes.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// Source renders the generated plugin-editor source listing: one statement
// block per descriptor in insertion order, the descriptor text as a section
// comment, configuration statements followed by a make-visible statement.
func Source(canvas models.CanvasConfig, components []*models.Descriptor) string {
	var b strings.Builder

	name := canvas.PluginName
	if name == "" {
		name = models.DefaultPluginName
	}
	fmt.Fprintf(&b, "// Generated component setup for %q\n", name)
	if canvas.PluginManufacturer != "" {
		fmt.Fprintf(&b, "// Vendor: %s\n", canvas.PluginManufacturer)
	}
	fmt.Fprintf(&b, "// Canvas: %s x %s\n\n", num(canvas.Width), num(canvas.Height))

	for _, d := range components {
		writeComponent(&b, d)
	}

	return b.String()
}

func writeComponent(b *strings.Builder, d *models.Descriptor) {
	name := identifier(d)
	fmt.Fprintf(b, "    // %s\n", d.Text)

	switch d.Type {
	case models.KindHorizontalSlider:
		writeSlider(b, d, name, "LinearHorizontal")
	case models.KindVerticalSlider:
		writeSlider(b, d, name, "LinearVertical")
	case models.KindKnob:
		writeSlider(b, d, name, "RotaryHorizontalVerticalDrag")
	case models.KindButton:
		fmt.Fprintf(b, "    %sButton = std::make_unique<juce::TextButton>();\n", name)
		fmt.Fprintf(b, "    %sButton->setButtonText(%q);\n", name, d.Text)
		writeBounds(b, d, name+"Button")
		fmt.Fprintf(b, "    addAndMakeVisible(*%sButton);\n", name)
	case models.KindToggle:
		fmt.Fprintf(b, "    %sToggle = std::make_unique<juce::ToggleButton>();\n", name)
		fmt.Fprintf(b, "    %sToggle->setButtonText(%q);\n", name, d.Text)
		fmt.Fprintf(b, "    %sToggle->setToggleState(%t, juce::dontSendNotification);\n", name, d.Toggled)
		writeBounds(b, d, name+"Toggle")
		fmt.Fprintf(b, "    addAndMakeVisible(*%sToggle);\n", name)
	case models.KindLabel:
		fmt.Fprintf(b, "    %sLabel = std::make_unique<juce::Label>();\n", name)
		fmt.Fprintf(b, "    %sLabel->setText(%q, juce::dontSendNotification);\n", name, d.Text)
		fmt.Fprintf(b, "    %sLabel->setJustificationType(juce::Justification::%s);\n", name, justification(d.Align))
		fmt.Fprintf(b, "    %sLabel->setFont(juce::Font(%s.0f));\n", name, strconv.Itoa(d.FontSize))
		writeBounds(b, d, name+"Label")
		fmt.Fprintf(b, "    addAndMakeVisible(*%sLabel);\n", name)
	case models.KindTextBox:
		fmt.Fprintf(b, "    %sTextBox = std::make_unique<juce::TextEditor>();\n", name)
		fmt.Fprintf(b, "    %sTextBox->setMultiLine(false);\n", name)
		fmt.Fprintf(b, "    %sTextBox->setText(%q);\n", name, d.Text)
		writeBounds(b, d, name+"TextBox")
		fmt.Fprintf(b, "    addAndMakeVisible(*%sTextBox);\n", name)
	case models.KindMeter:
		fmt.Fprintf(b, "    %sMeterBounds = juce::Rectangle<int>(%s, %s, %s, %s);\n",
			name, num(d.X), num(d.Y), num(d.Width), num(d.Height))
		fmt.Fprintf(b, "    %sMeterLevel = %sf;\n", name, num(d.Level))
		fmt.Fprintf(b, "    // Draw this meter in paint() from %sMeterBounds and %sMeterLevel\n", name, name)
	case models.KindComboBox:
		fmt.Fprintf(b, "    %sComboBox = std::make_unique<juce::ComboBox>();\n", name)
		for i, opt := range d.Options {
			fmt.Fprintf(b, "    %sComboBox->addItem(%q, %d);\n", name, opt, i+1)
		}
		if idx := d.SelectedIndex; idx != nil && *idx >= 0 && *idx < len(d.Options) {
			fmt.Fprintf(b, "    %sComboBox->setSelectedItemIndex(%d);\n", name, *idx)
		}
		writeBounds(b, d, name+"ComboBox")
		fmt.Fprintf(b, "    addAndMakeVisible(*%sComboBox);\n", name)
	default:
		fmt.Fprintf(b, "    // Unsupported component kind %q at (%s, %s)\n",
			string(d.Type), num(d.X), num(d.Y))
	}

	b.WriteString("\n")
}

func writeSlider(b *strings.Builder, d *models.Descriptor, name, style string) {
	fmt.Fprintf(b, "    %sSlider = std::make_unique<juce::Slider>();\n", name)
	fmt.Fprintf(b, "    %sSlider->setSliderStyle(juce::Slider::%s);\n", name, style)
	fmt.Fprintf(b, "    %sSlider->setRange(%s, %s);\n", name, num(d.MinValue), num(d.MaxValue))
	fmt.Fprintf(b, "    %sSlider->setValue(%s);\n", name, num(d.DefaultValue))
	writeBounds(b, d, name+"Slider")
	fmt.Fprintf(b, "    addAndMakeVisible(*%sSlider);\n", name)
}

func writeBounds(b *strings.Builder, d *models.Descriptor, member string) {
	fmt.Fprintf(b, "    %s->setBounds(%s, %s, %s, %s);\n",
		member, num(d.X), num(d.Y), num(d.Width), num(d.Height))
}

func justification(align string) string {
	switch align {
	case models.AlignLeft:
		return "centredLeft"
	case models.AlignRight:
		return "centredRight"
	default:
		return "centred"
	}
}

// identifier derives a source identifier from the descriptor text, falling
// back to kind plus a shortened id when the text yields nothing usable.
func identifier(d *models.Descriptor) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(d.Text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	name := sb.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		short := strings.ReplaceAll(d.ID, "-", "")
		if len(short) > 8 {
			short = short[:8]
		}
		name = fmt.Sprintf("%s_%s", string(d.Type), short)
	}
	return name
}

// num formats a float with the shortest exact decimal representation so that
// repeated exports are byte-identical.
func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
