package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sblake94/plugin-gui-designer/internal/render"
	"github.com/sblake94/plugin-gui-designer/internal/session"
)

// WebSocket message types for the live editing protocol
const (
	// Client -> Server messages
	MsgTypePointerPress   = "pointer:press"
	MsgTypePointerMove    = "pointer:move"
	MsgTypePointerRelease = "pointer:release"
	MsgTypeDrop           = "drop"
	MsgTypeZoom           = "zoom"
	MsgTypePing           = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeFrame     = "frame"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// PointerPayload carries device coordinates for pointer events.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DropPayload carries a toolbox drop.
type DropPayload struct {
	Type   string  `json:"type"`
	Preset string  `json:"preset,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// ZoomPayload carries a zoom change.
type ZoomPayload struct {
	Zoom float64 `json:"zoom"`
}

// FramePayload is pushed after every state change: the current pointer
// result plus the full display list for the frontend to replay.
type FramePayload struct {
	SelectedID string      `json:"selectedId,omitempty"`
	Dragging   bool        `json:"dragging"`
	Ops        []render.Op `json:"ops"`
}

// WSErrorPayload reports a rejected message.
type WSErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WebSocketHandler manages live editing connections. One connection edits
// one session; the session is resolved from the route parameter at upgrade
// time.
type WebSocketHandler struct {
	sessions *session.Manager
	renderer *render.Renderer
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewWebSocketHandler creates a live editing WebSocket handler.
func NewWebSocketHandler(sessions *session.Manager, renderer *render.Renderer, maxMessageKB int, log zerolog.Logger) *WebSocketHandler {
	if maxMessageKB <= 0 {
		maxMessageKB = 1024
	}
	return &WebSocketHandler{
		sessions: sessions,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The designer is a local tool; same-host dev servers connect
				// from arbitrary origins.
				return true
			},
			ReadBufferSize:  maxMessageKB * 1024,
			WriteBufferSize: maxMessageKB * 1024,
		},
		log: log,
	}
}

// HandleWebSocket upgrades the connection and runs the editing loop.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	s, ok := wsh.sessions.Get(c.Param("sessionId"))
	if !ok {
		return NewNotFoundError("session", c.Param("sessionId"))
	}

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	log := wsh.log.With().Str("session", s.ID()[:8]).Logger()
	log.Debug().Msg("websocket client connected")

	wsh.send(ws, WSMessage{Type: MsgTypeConnected, Timestamp: time.Now().UnixMilli()})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("websocket connection error")
			}
			break
		}
		s.Touch()

		switch msg.Type {
		case MsgTypePing:
			wsh.send(ws, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		case MsgTypePointerPress:
			wsh.handlePointer(ws, s, msg, s.PointerPress)
		case MsgTypePointerMove:
			wsh.handlePointer(ws, s, msg, s.PointerMove)
		case MsgTypePointerRelease:
			s.PointerRelease()
			wsh.pushFrame(ws, s)
		case MsgTypeDrop:
			wsh.handleDrop(ws, s, msg)
		case MsgTypeZoom:
			wsh.handleZoom(ws, s, msg)
		default:
			wsh.sendError(ws, "unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}

	log.Debug().Msg("websocket client disconnected")
	return nil
}

func (wsh *WebSocketHandler) handlePointer(ws *websocket.Conn, s *session.Session, msg WSMessage, fn func(float64, float64) session.PointerResult) {
	var p PointerPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		wsh.sendError(ws, "invalid pointer payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}
	fn(p.X, p.Y)
	wsh.pushFrame(ws, s)
}

func (wsh *WebSocketHandler) handleDrop(ws *websocket.Conn, s *session.Session, msg WSMessage) {
	var p DropPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		wsh.sendError(ws, "invalid drop payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}
	if _, err := s.Drop(p.Type, p.X, p.Y); err != nil {
		wsh.sendError(ws, err.Error(), "EMPTY_DROP")
		return
	}
	wsh.pushFrame(ws, s)
}

func (wsh *WebSocketHandler) handleZoom(ws *websocket.Conn, s *session.Session, msg WSMessage) {
	var p ZoomPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		wsh.sendError(ws, "invalid zoom payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}
	if err := s.SetZoom(p.Zoom); err != nil {
		wsh.sendError(ws, err.Error(), "INVALID_ZOOM")
		return
	}
	wsh.pushFrame(ws, s)
}

// pushFrame renders the current state and sends it as a frame message.
func (wsh *WebSocketHandler) pushFrame(ws *websocket.Conn, s *session.Session) {
	st := s.State()
	frame := FramePayload{
		SelectedID: st.SelectedID,
		Dragging:   st.Dragging,
		Ops:        wsh.renderer.Frame(st.Canvas, st.Components, st.SelectedID),
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		wsh.log.Warn().Err(err).Msg("encoding frame payload")
		return
	}
	wsh.send(ws, WSMessage{Type: MsgTypeFrame, Payload: payload, Timestamp: time.Now().UnixMilli()})
}

func (wsh *WebSocketHandler) send(ws *websocket.Conn, msg WSMessage) {
	if err := ws.WriteJSON(msg); err != nil {
		wsh.log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (wsh *WebSocketHandler) sendError(ws *websocket.Conn, message, code string) {
	payload, _ := json.Marshal(WSErrorPayload{Message: message, Code: code})
	wsh.send(ws, WSMessage{Type: MsgTypeError, Payload: payload, Timestamp: time.Now().UnixMilli()})
}
