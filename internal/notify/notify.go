// Package notify posts component creation events to an external automation
// endpoint. Delivery is fire-and-forget: failures are logged and dropped,
// never surfaced to the editing flow.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

const requestTimeout = 3 * time.Second

// Client delivers creation events over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// New builds a client for the given base endpoint. An empty endpoint yields
// a nil client, which is safe to call and does nothing.
func New(endpoint string, log zerolog.Logger) *Client {
	if endpoint == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
		log:      log,
	}
}

type createEvent struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ComponentCreated announces a placed component. The request runs on its
// own goroutine; the caller never blocks on it.
func (c *Client) ComponentCreated(kind models.Kind, x, y float64) {
	if c == nil {
		return
	}
	go c.post(createEvent{Type: string(kind), X: x, Y: y})
}

func (c *Client) post(ev createEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		c.log.Warn().Err(err).Msg("encoding creation event")
		return
	}

	url := fmt.Sprintf("%s/api/Component/Create", c.endpoint)
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Str("kind", ev.Type).Msg("creation event not delivered")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("kind", ev.Type).Msg("creation event rejected")
	}
}
