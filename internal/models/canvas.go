package models

// Minimum canvas dimensions. Resize requests below these bounds are rejected
// and the prior configuration is retained.
const (
	MinCanvasWidth  = 200
	MinCanvasHeight = 150
)

// Default canvas configuration values.
const (
	DefaultCanvasWidth     = 400
	DefaultCanvasHeight    = 300
	DefaultBackgroundColor = "#F0F0F0"
	DefaultPluginName      = "Audio Plugin"
	DefaultGridSize        = 10
)

// CanvasConfig is the per-session canvas state: dimensions, background and
// the plugin identity stamped into exports.
type CanvasConfig struct {
	Width              float64 `json:"width" validate:"min=200"`
	Height             float64 `json:"height" validate:"min=150"`
	BackgroundColor    string  `json:"backgroundColor"`
	PluginName         string  `json:"pluginName"`
	PluginManufacturer string  `json:"pluginManufacturer"`
	GridSize           int     `json:"gridSize,omitempty" validate:"omitempty,min=2"`
	ShowGrid           bool    `json:"showGrid,omitempty"`
}

// DefaultCanvasConfig returns the configuration a fresh session starts with.
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		Width:           DefaultCanvasWidth,
		Height:          DefaultCanvasHeight,
		BackgroundColor: DefaultBackgroundColor,
		PluginName:      DefaultPluginName,
		GridSize:        DefaultGridSize,
	}
}
