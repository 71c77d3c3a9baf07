// Package render turns descriptors into display lists of primitive draw ops.
// The server never rasterizes: the browser frontend replays the ops onto its
// canvas element.
package render

// OpCode names a primitive drawing operation.
type OpCode string

const (
	OpFillRect      OpCode = "fillRect"
	OpStrokeRect    OpCode = "strokeRect"
	OpDashedRect    OpCode = "dashedRect"
	OpFillRoundRect OpCode = "fillRoundRect"
	OpFillEllipse   OpCode = "fillEllipse"
	OpStrokeEllipse OpCode = "strokeEllipse"
	OpLine          OpCode = "line"
	OpText          OpCode = "text"
)

// Op is a single drawing command in canvas-local coordinates. Only the
// fields relevant to the op code are populated.
type Op struct {
	Code     OpCode  `json:"op"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	X2       float64 `json:"x2,omitempty"`
	Y2       float64 `json:"y2,omitempty"`
	Color    string  `json:"color"`
	Stroke   float64 `json:"stroke,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize int     `json:"fontSize,omitempty"`
	Align    string  `json:"align,omitempty"`
}

// List accumulates draw ops for one frame or one component.
type List struct {
	ops []Op
}

// Ops returns the accumulated operations in draw order.
func (l *List) Ops() []Op { return l.ops }

func (l *List) FillRect(x, y, w, h float64, color string) {
	l.ops = append(l.ops, Op{Code: OpFillRect, X: x, Y: y, W: w, H: h, Color: color})
}

func (l *List) StrokeRect(x, y, w, h float64, color string, stroke float64) {
	l.ops = append(l.ops, Op{Code: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: color, Stroke: stroke})
}

func (l *List) DashedRect(x, y, w, h float64, color string, stroke float64) {
	l.ops = append(l.ops, Op{Code: OpDashedRect, X: x, Y: y, W: w, H: h, Color: color, Stroke: stroke})
}

func (l *List) FillRoundRect(x, y, w, h, radius float64, color string) {
	l.ops = append(l.ops, Op{Code: OpFillRoundRect, X: x, Y: y, W: w, H: h, Radius: radius, Color: color})
}

func (l *List) FillEllipse(x, y, w, h float64, color string) {
	l.ops = append(l.ops, Op{Code: OpFillEllipse, X: x, Y: y, W: w, H: h, Color: color})
}

func (l *List) StrokeEllipse(x, y, w, h float64, color string, stroke float64) {
	l.ops = append(l.ops, Op{Code: OpStrokeEllipse, X: x, Y: y, W: w, H: h, Color: color, Stroke: stroke})
}

func (l *List) Line(x1, y1, x2, y2 float64, color string, stroke float64) {
	l.ops = append(l.ops, Op{Code: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: color, Stroke: stroke})
}

func (l *List) Text(x, y float64, text, color string, fontSize int, align string) {
	l.ops = append(l.ops, Op{Code: OpText, X: x, Y: y, Text: text, Color: color, FontSize: fontSize, Align: align})
}
