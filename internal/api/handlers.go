package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sblake94/plugin-gui-designer/internal/export"
	"github.com/sblake94/plugin-gui-designer/internal/palette"
	"github.com/sblake94/plugin-gui-designer/internal/render"
	"github.com/sblake94/plugin-gui-designer/internal/session"
	"github.com/sblake94/plugin-gui-designer/internal/store"
)

// Handler handles API requests.
type Handler struct {
	sessions *session.Manager
	renderer *render.Renderer
	store    *store.Store
	palette  *palette.Palette
	version  string
	log      zerolog.Logger
}

// NewHandler creates a new API handler. The store may be nil, in which case
// design persistence endpoints report service unavailable.
func NewHandler(sessions *session.Manager, renderer *render.Renderer, st *store.Store, pal *palette.Palette, version string, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		renderer: renderer,
		store:    st,
		palette:  pal,
		version:  version,
		log:      log,
	}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// --- Sessions ---

// HandleCreateSession opens a new designer session on the default canvas.
func (h *Handler) HandleCreateSession(c echo.Context) error {
	s := h.sessions.NewSession()
	return c.JSON(http.StatusCreated, s.State())
}

// HandleGetSession returns the full session state.
func (h *Handler) HandleGetSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.State())
}

// HandleDeleteSession closes a session.
func (h *Handler) HandleDeleteSession(c echo.Context) error {
	if !h.sessions.Delete(c.Param("sessionId")) {
		return NewNotFoundError("session", c.Param("sessionId"))
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleSessionSnapshot returns the session state as MessagePack, for the
// frontend's binary state channel.
func (h *Handler) HandleSessionSnapshot(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	data, err := msgpack.Marshal(s.State())
	if err != nil {
		return NewInternalError("failed to encode snapshot", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// --- Components ---

type createComponentRequest struct {
	Type   string  `json:"type"`
	Preset string  `json:"preset,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// HandleCreateComponent places a new component from a toolbox drop. Either
// a kind tag or a palette preset key selects what is placed; coordinates
// are device pixels.
func (h *Handler) HandleCreateComponent(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req createComponentRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if req.Preset != "" {
		preset, ok := h.palette.Find(req.Preset)
		if !ok {
			return NewNotFoundError("preset", req.Preset)
		}
		d := s.Place(preset.Build(), req.X, req.Y)
		return c.JSON(http.StatusCreated, d)
	}

	d, err := s.Drop(req.Type, req.X, req.Y)
	if err != nil {
		if errors.Is(err, session.ErrEmptyDropPayload) {
			return NewBadRequestError("component type is required", nil)
		}
		return NewInternalError("failed to create component", err)
	}
	return c.JSON(http.StatusCreated, d)
}

// HandleUpdateComponent applies a property patch to one component.
func (h *Handler) HandleUpdateComponent(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var patch session.ComponentUpdate
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	d, err := s.UpdateComponent(c.Param("componentId"), patch)
	if err != nil {
		if errors.Is(err, session.ErrComponentNotFound) {
			return NewNotFoundError("component", c.Param("componentId"))
		}
		return NewValidationError("component update rejected", err)
	}
	return c.JSON(http.StatusOK, d)
}

// HandleGetComponent returns one component descriptor.
func (h *Handler) HandleGetComponent(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	d, ok := s.Component(c.Param("componentId"))
	if !ok {
		return NewNotFoundError("component", c.Param("componentId"))
	}
	return c.JSON(http.StatusOK, d)
}

// --- Pointer protocol ---

type pointerRequest struct {
	Event string  `json:"event"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// HandlePointer dispatches a pointer event (press, move or release) into
// the session's drag state machine.
func (h *Handler) HandlePointer(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req pointerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	var res session.PointerResult
	switch strings.ToLower(req.Event) {
	case "press":
		res = s.PointerPress(req.X, req.Y)
	case "move":
		res = s.PointerMove(req.X, req.Y)
	case "release":
		res = s.PointerRelease()
	default:
		return NewBadRequestError(fmt.Sprintf("unknown pointer event %q", req.Event), nil)
	}
	return c.JSON(http.StatusOK, res)
}

// --- Selection ---

// HandleDeleteSelection removes the selected component.
func (h *Handler) HandleDeleteSelection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if !s.DeleteSelected() {
		return NewConflictError("no component is selected")
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleDuplicateSelection clones the selected component with an offset.
func (h *Handler) HandleDuplicateSelection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	d, err := s.Duplicate()
	if err != nil {
		return NewConflictError("no component is selected")
	}
	return c.JSON(http.StatusCreated, d)
}

// --- Canvas ---

// HandleUpdateCanvas applies a partial canvas reconfiguration. An invalid
// merged configuration is rejected and the prior one retained.
func (h *Handler) HandleUpdateCanvas(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var patch session.CanvasUpdate
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	canvas, err := s.ConfigureCanvas(patch)
	if err != nil {
		return NewValidationError("canvas configuration rejected", err)
	}
	return c.JSON(http.StatusOK, canvas)
}

type zoomRequest struct {
	Zoom float64 `json:"zoom"`
}

// HandleSetZoom sets the device-to-canvas zoom factor.
func (h *Handler) HandleSetZoom(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req zoomRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := s.SetZoom(req.Zoom); err != nil {
		return NewValidationError("zoom rejected", err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"zoom": req.Zoom})
}

// HandleClear removes every component from the session.
func (h *Handler) HandleClear(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.Clear()
	return c.JSON(http.StatusOK, s.State())
}

// HandleNewProject resets the session to an empty default canvas.
func (h *Handler) HandleNewProject(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	s.Reset(h.sessions.Defaults())
	return c.JSON(http.StatusOK, s.State())
}

// --- Rendering ---

// HandleFrame renders the current canvas into a draw-op display list for
// the frontend to replay.
func (h *Handler) HandleFrame(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	st := s.State()
	ops := h.renderer.Frame(st.Canvas, st.Components, st.SelectedID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"canvas": st.Canvas,
		"zoom":   st.Zoom,
		"ops":    ops,
	})
}

// --- Export ---

// HandleExport renders the layout in one of the three export formats:
// source, json or xml.
func (h *Handler) HandleExport(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	doc := s.Document()

	switch c.Param("format") {
	case "source":
		return c.Blob(http.StatusOK, "text/x-c++src", []byte(export.Source(doc.Canvas, doc.Components)))
	case "json":
		body, err := export.Document(doc.Canvas, doc.Components)
		if err != nil {
			return NewInternalError("failed to export layout", err)
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
	case "xml":
		body, err := export.Markup(doc.Canvas, doc.Components)
		if err != nil {
			return NewInternalError("failed to export layout", err)
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationXML, []byte(body))
	default:
		return NewBadRequestError(fmt.Sprintf("unknown export format %q", c.Param("format")), nil)
	}
}

// HandleImportDocument replaces the session content from a JSON layout
// document in the request body.
func (h *Handler) HandleImportDocument(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	body, err := readBody(c)
	if err != nil {
		return NewBadRequestError("failed to read request body", err)
	}
	doc, err := export.ParseDocument(body)
	if err != nil {
		return NewBadRequestError("invalid layout document", err)
	}
	if err := s.Restore(doc); err != nil {
		return NewValidationError("layout document rejected", err)
	}
	return c.JSON(http.StatusOK, s.State())
}

// --- Designs ---

type saveDesignRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// HandleSaveDesign persists the session's current layout under a name.
func (h *Handler) HandleSaveDesign(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "design persistence is disabled")
	}
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req saveDesignRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewBadRequestError("design name is required", nil)
	}

	info, err := h.store.Save(c.Request().Context(), req.ID, req.Name, s.Document())
	if err != nil {
		return NewInternalError("failed to save design", err)
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleListDesigns returns saved designs, most recent first.
func (h *Handler) HandleListDesigns(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "design persistence is disabled")
	}
	infos, err := h.store.List(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list designs", err)
	}
	return c.JSON(http.StatusOK, infos)
}

// HandleGetDesign returns a saved design's layout document.
func (h *Handler) HandleGetDesign(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "design persistence is disabled")
	}
	doc, info, err := h.store.Get(c.Request().Context(), c.Param("designId"))
	if err != nil {
		if errors.Is(err, store.ErrDesignNotFound) {
			return NewNotFoundError("design", c.Param("designId"))
		}
		return NewInternalError("failed to load design", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"info":     info,
		"document": doc,
	})
}

// HandleDeleteDesign removes a saved design.
func (h *Handler) HandleDeleteDesign(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "design persistence is disabled")
	}
	ok, err := h.store.Delete(c.Request().Context(), c.Param("designId"))
	if err != nil {
		return NewInternalError("failed to delete design", err)
	}
	if !ok {
		return NewNotFoundError("design", c.Param("designId"))
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleLoadDesign replaces the session content with a saved design.
func (h *Handler) HandleLoadDesign(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "design persistence is disabled")
	}
	s, err := h.session(c)
	if err != nil {
		return err
	}

	doc, _, err := h.store.Get(c.Request().Context(), c.Param("designId"))
	if err != nil {
		if errors.Is(err, store.ErrDesignNotFound) {
			return NewNotFoundError("design", c.Param("designId"))
		}
		return NewInternalError("failed to load design", err)
	}
	if err := s.Restore(doc); err != nil {
		return NewValidationError("stored design rejected", err)
	}
	return c.JSON(http.StatusOK, s.State())
}

// --- Palette ---

// HandleGetPalette returns the preset catalog.
func (h *Handler) HandleGetPalette(c echo.Context) error {
	return c.JSON(http.StatusOK, h.palette.Presets())
}

func readBody(c echo.Context) ([]byte, error) {
	defer c.Request().Body.Close()
	return io.ReadAll(c.Request().Body)
}

// session resolves the :sessionId path parameter.
func (h *Handler) session(c echo.Context) (*session.Session, error) {
	id := c.Param("sessionId")
	s, ok := h.sessions.Get(id)
	if !ok {
		return nil, NewNotFoundError("session", id)
	}
	return s, nil
}
