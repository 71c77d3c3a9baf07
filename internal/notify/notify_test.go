package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

func TestComponentCreatedPostsEvent(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
		body []byte
	)
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		mu.Unlock()
		close(done)
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	c.ComponentCreated(models.KindKnob, 120, 90)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("creation event never delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/api/Component/Create", path)

	var ev struct {
		Type string  `json:"type"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}
	require.NoError(t, json.Unmarshal(body, &ev))
	assert.Equal(t, "knob", ev.Type)
	assert.Equal(t, 120.0, ev.X)
	assert.Equal(t, 90.0, ev.Y)
}

func TestNilClientIsSafe(t *testing.T) {
	c := New("", zerolog.Nop())
	assert.Nil(t, c)
	// Calls on the nil client are no-ops, never panics.
	c.ComponentCreated(models.KindButton, 0, 0)
}
