package models

// Document is the persisted layout: one canvas configuration plus the placed
// descriptors in insertion order. It is the root of the JSON interchange
// format and the unit saved to the design store. Rendering-only transient
// state (selection, drag, caret phase) is deliberately absent.
type Document struct {
	Canvas     CanvasConfig  `json:"canvas"`
	Components []*Descriptor `json:"components"`
}

// DesignInfo is metadata about a saved design document.
type DesignInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt int64  `json:"updatedAt"` // Unix ms
}
