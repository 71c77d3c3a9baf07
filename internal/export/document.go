package export

import (
	"encoding/json"
	"fmt"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// Document renders the JSON interchange form of a layout. The result parses
// back via ParseDocument into an equal Document, field for field.
func Document(canvas models.CanvasConfig, components []*models.Descriptor) ([]byte, error) {
	doc := models.Document{
		Canvas:     canvas,
		Components: components,
	}
	if doc.Components == nil {
		doc.Components = []*models.Descriptor{}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding layout document: %w", err)
	}
	return append(out, '\n'), nil
}

// ParseDocument decodes a JSON interchange document produced by Document.
func ParseDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing layout document: %w", err)
	}
	return &doc, nil
}
