package render

import (
	"math"
	"time"

	"github.com/sblake94/plugin-gui-designer/internal/geom"
	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// Fixed rendering colors.
const (
	accentColor  = "#0078D4" // selection outline and handles
	borderColor  = "#888888"
	trackColor   = "#DDDDDD"
	outlineFaint = "#CCCCCC"
	placeholder  = "#999999"
	meterGreen   = "#4CAF50"
	meterAmber   = "#FFC107"
	meterRed     = "#F44336"
)

// Meter gradient stop boundaries (fraction of full scale, bottom to top).
const (
	meterAmberStart = 0.6
	meterRedStart   = 0.85
)

const (
	thumbSize        = 10.0
	selectInset      = 2.0
	handleSize       = 6.0
	caretPeriod      = 500 * time.Millisecond
	knobPointerInset = 5.0
)

// Renderer is a stateless painter from descriptors to draw ops. Now supplies
// the wall clock for the text box caret blink; tests may replace it.
type Renderer struct {
	Now func() time.Time
}

// New returns a Renderer on the real clock.
func New() *Renderer {
	return &Renderer{Now: time.Now}
}

// Frame renders the whole canvas: background fill followed by every
// descriptor in insertion order, with selection decoration on selectedID.
func (r *Renderer) Frame(canvas models.CanvasConfig, components []*models.Descriptor, selectedID string) []Op {
	var l List
	if canvas.BackgroundColor != geom.ColorTransparent && canvas.BackgroundColor != "" {
		l.FillRect(0, 0, canvas.Width, canvas.Height, canvas.BackgroundColor)
	}
	for _, d := range components {
		l.ops = append(l.ops, r.Component(d, d.ID == selectedID)...)
	}
	return l.Ops()
}

// Component renders a single descriptor. Invisible descriptors produce no
// ops at all. When selected, the accent outline and four corner handles are
// drawn on top of the base rendering.
func (r *Renderer) Component(d *models.Descriptor, selected bool) []Op {
	if !d.Visible {
		return nil
	}

	var l List
	switch d.Type {
	case models.KindHorizontalSlider:
		r.horizontalSlider(&l, d)
	case models.KindVerticalSlider:
		r.verticalSlider(&l, d)
	case models.KindKnob:
		r.knob(&l, d)
	case models.KindButton:
		r.button(&l, d)
	case models.KindToggle:
		r.toggle(&l, d)
	case models.KindLabel:
		r.label(&l, d)
	case models.KindTextBox:
		r.textBox(&l, d)
	case models.KindMeter:
		r.meter(&l, d)
	case models.KindComboBox:
		r.comboBox(&l, d)
	default:
		r.generic(&l, d)
	}

	if selected {
		r.selection(&l, d)
	}
	return l.Ops()
}

func (r *Renderer) horizontalSlider(l *List, d *models.Descriptor) {
	trackY := d.Y + d.Height/2 - 2
	l.FillRect(d.X, trackY, d.Width, 4, trackColor)

	norm := d.NormalizedValue()
	thumbX := d.X + norm*(d.Width-thumbSize)
	l.FillRect(thumbX, d.Y, thumbSize, d.Height, thumbFill(d))
	r.caption(l, d)
}

func (r *Renderer) verticalSlider(l *List, d *models.Descriptor) {
	trackX := d.X + d.Width/2 - 2
	l.FillRect(trackX, d.Y, 4, d.Height, trackColor)

	// Value grows bottom-up along the long axis.
	norm := d.NormalizedValue()
	thumbY := d.Y + (1-norm)*(d.Height-thumbSize)
	l.FillRect(d.X, thumbY, d.Width, thumbSize, thumbFill(d))
	r.caption(l, d)
}

func (r *Renderer) knob(l *List, d *models.Descriptor) {
	radius := math.Min(d.Width, d.Height) / 2
	cx := d.X + d.Width/2
	cy := d.Y + d.Height/2

	l.FillEllipse(cx-radius, cy-radius, radius*2, radius*2, d.Color)
	l.StrokeEllipse(cx-radius, cy-radius, radius*2, radius*2, borderColor, 2)

	// 270-degree sweep starting 135 degrees before top-center:
	// angle = norm*1.5*pi - 0.75*pi, measured in standard math orientation.
	norm := d.NormalizedValue()
	angle := norm*1.5*math.Pi - 0.75*math.Pi
	reach := radius - knobPointerInset
	px := cx + math.Cos(angle)*reach
	py := cy + math.Sin(angle)*reach
	l.Line(cx, cy, px, py, pointerColor(d), 2)
	r.caption(l, d)
}

func (r *Renderer) button(l *List, d *models.Descriptor) {
	fill := d.Color
	if d.Pressed {
		fill = geom.Darken(fill, 0.2)
	}
	l.FillRect(d.X, d.Y, d.Width, d.Height, fill)
	l.StrokeRect(d.X, d.Y, d.Width, d.Height, borderColor, 1)
	l.Text(d.X+d.Width/2, d.Y+d.Height/2, d.Text, d.TextColor, d.FontSize, models.AlignCenter)
}

func (r *Renderer) toggle(l *List, d *models.Descriptor) {
	track := d.AltColor
	if track == "" {
		track = trackColor
	}
	if d.Toggled {
		track = d.Color
	}
	l.FillRoundRect(d.X, d.Y, d.Width, d.Height, d.Height/2, track)

	handle := d.Height - 4
	hx := d.X + 2
	if d.Toggled {
		hx = d.X + d.Width - handle - 2
	}
	l.FillEllipse(hx, d.Y+2, handle, handle, "#FFFFFF")
	l.StrokeEllipse(hx, d.Y+2, handle, handle, borderColor, 1)
	r.caption(l, d)
}

func (r *Renderer) label(l *List, d *models.Descriptor) {
	if d.Color == geom.ColorTransparent {
		l.DashedRect(d.X, d.Y, d.Width, d.Height, outlineFaint, 1)
	} else {
		l.FillRect(d.X, d.Y, d.Width, d.Height, d.Color)
		l.StrokeRect(d.X, d.Y, d.Width, d.Height, outlineFaint, 1)
	}

	tx := d.X + d.Width/2
	align := d.Align
	switch align {
	case models.AlignLeft:
		tx = d.X + 4
	case models.AlignRight:
		tx = d.X + d.Width - 4
	default:
		align = models.AlignCenter
	}
	l.Text(tx, d.Y+d.Height/2, d.Text, d.TextColor, d.FontSize, align)
}

func (r *Renderer) textBox(l *List, d *models.Descriptor) {
	fill := d.Color
	if fill == "" {
		fill = "#FFFFFF"
	}
	l.FillRect(d.X, d.Y, d.Width, d.Height, fill)
	l.StrokeRect(d.X, d.Y, d.Width, d.Height, borderColor, 1)

	text := d.Text
	color := d.TextColor
	if text == "" {
		text = d.Placeholder
		color = placeholder
	}
	if text != "" {
		l.Text(d.X+4, d.Y+d.Height/2, text, color, d.FontSize, models.AlignLeft)
	}

	if r.caretOn() {
		// Rough advance estimate; the frontend draws the real caret.
		caretX := d.X + 6 + 0.6*float64(d.FontSize)*float64(len(d.Text))
		caretX = geom.Clamp(caretX, d.X+4, d.X+d.Width-4)
		l.Line(caretX, d.Y+4, caretX, d.Y+d.Height-4, d.TextColor, 1)
	}
}

func (r *Renderer) meter(l *List, d *models.Descriptor) {
	l.FillRect(d.X, d.Y, d.Width, d.Height, d.Color)

	level := geom.Clamp(d.Level, 0, 1)
	segments := []struct {
		from, to float64
		color    string
	}{
		{0, math.Min(level, meterAmberStart), meterGreen},
		{meterAmberStart, math.Min(level, meterRedStart), meterAmber},
		{meterRedStart, level, meterRed},
	}
	for _, seg := range segments {
		if seg.to <= seg.from {
			continue
		}
		segY := d.Y + d.Height*(1-seg.to)
		segH := d.Height * (seg.to - seg.from)
		l.FillRect(d.X+1, segY, d.Width-2, segH, seg.color)
	}

	l.StrokeRect(d.X, d.Y, d.Width, d.Height, borderColor, 1)
}

func (r *Renderer) comboBox(l *List, d *models.Descriptor) {
	fill := d.Color
	if fill == "" {
		fill = "#FFFFFF"
	}
	l.FillRect(d.X, d.Y, d.Width, d.Height, fill)
	l.StrokeRect(d.X, d.Y, d.Width, d.Height, borderColor, 1)

	text, ok := d.SelectedOption()
	color := d.TextColor
	if !ok {
		text = "Select..."
		color = placeholder
	}
	l.Text(d.X+4, d.Y+d.Height/2, text, color, d.FontSize, models.AlignLeft)
	l.Text(d.X+d.Width-4, d.Y+d.Height/2, "▾", d.TextColor, d.FontSize, models.AlignRight)
}

// generic is the fallback rendering for unknown kinds: a box plus label.
func (r *Renderer) generic(l *List, d *models.Descriptor) {
	l.FillRect(d.X, d.Y, d.Width, d.Height, d.Color)
	l.StrokeRect(d.X, d.Y, d.Width, d.Height, borderColor, 1)
	l.Text(d.X+d.Width/2, d.Y+d.Height/2, d.Text, d.TextColor, d.FontSize, models.AlignCenter)
}

// caption draws the descriptor text under the control, for kinds whose body
// does not carry the text itself.
func (r *Renderer) caption(l *List, d *models.Descriptor) {
	if d.Text == "" {
		return
	}
	l.Text(d.X+d.Width/2, d.Y+d.Height+12, d.Text, d.TextColor, d.FontSize, models.AlignCenter)
}

// selection draws the accent outline inset by a fixed margin plus the four
// corner handles, always on top of the base rendering.
func (r *Renderer) selection(l *List, d *models.Descriptor) {
	l.StrokeRect(d.X+selectInset, d.Y+selectInset, d.Width-2*selectInset, d.Height-2*selectInset, accentColor, 2)

	half := handleSize / 2
	corners := [4][2]float64{
		{d.X, d.Y},
		{d.X + d.Width, d.Y},
		{d.X, d.Y + d.Height},
		{d.X + d.Width, d.Y + d.Height},
	}
	for _, c := range corners {
		l.FillRect(c[0]-half, c[1]-half, handleSize, handleSize, accentColor)
	}
}

func (r *Renderer) caretOn() bool {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return (now().UnixMilli()/caretPeriod.Milliseconds())%2 == 0
}

func thumbFill(d *models.Descriptor) string {
	if d.ThumbColor != "" {
		return d.ThumbColor
	}
	return d.Color
}

func pointerColor(d *models.Descriptor) string {
	if d.ThumbColor != "" {
		return d.ThumbColor
	}
	return d.TextColor
}
