package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sblake94/plugin-gui-designer/internal/models"
	"github.com/sblake94/plugin-gui-designer/internal/palette"
	"github.com/sblake94/plugin-gui-designer/internal/render"
	"github.com/sblake94/plugin-gui-designer/internal/session"
	"github.com/sblake94/plugin-gui-designer/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *session.Manager) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "designs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mgr := session.NewManager(models.DefaultCanvasConfig(), nil, zerolog.Nop())
	h := NewHandler(mgr, render.New(), st, palette.Default(), "test", zerolog.Nop())
	return h, mgr
}

func jsonRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func ctxWithSession(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, sessionID string, extra ...string) echo.Context {
	c := e.NewContext(req, rec)
	names := []string{"sessionId"}
	values := []string{sessionID}
	for i := 0; i+1 < len(extra); i += 2 {
		names = append(names, extra[i])
		values = append(values, extra[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := jsonRequest(http.MethodGet, "/health", "")
	rec := httptest.NewRecorder()
	if assert.NoError(t, h.HandleHealth(e.NewContext(req, rec))) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	}
}

func TestSessionLifecycle(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	// Create
	req := jsonRequest(http.MethodPost, "/api/sessions", "")
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleCreateSession(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, 1.0, st.Zoom)

	// Get
	req = jsonRequest(http.MethodGet, "/", "")
	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleGetSession(ctxWithSession(e, req, rec, st.ID)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown session surfaces a 404
	rec = httptest.NewRecorder()
	err := h.HandleGetSession(ctxWithSession(e, jsonRequest(http.MethodGet, "/", ""), rec, "missing"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	// Delete
	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleDeleteSession(ctxWithSession(e, jsonRequest(http.MethodDelete, "/", ""), rec, st.ID)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateComponentFromKind(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	req := jsonRequest(http.MethodPost, "/", `{"type":"knob","x":120,"y":90}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleCreateComponent(ctxWithSession(e, req, rec, s.ID())))
	require.Equal(t, http.StatusCreated, rec.Code)

	var d models.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, models.KindKnob, d.Type)
	assert.Equal(t, 120.0, d.X)
	assert.Equal(t, d.ID, s.SelectedID())
}

func TestCreateComponentRequiresType(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	req := jsonRequest(http.MethodPost, "/", `{"x":10,"y":10}`)
	rec := httptest.NewRecorder()
	err := h.HandleCreateComponent(ctxWithSession(e, req, rec, s.ID()))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Empty(t, s.Components())
}

func TestCreateComponentFromPreset(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	req := jsonRequest(http.MethodPost, "/", `{"preset":"gain","x":50,"y":60}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleCreateComponent(ctxWithSession(e, req, rec, s.ID())))
	require.Equal(t, http.StatusCreated, rec.Code)

	var d models.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, models.KindVerticalSlider, d.Type)
	assert.Equal(t, "Gain", d.Text)
	assert.Equal(t, -60.0, d.MinValue)

	// Unknown preset key is a 404.
	req = jsonRequest(http.MethodPost, "/", `{"preset":"nope","x":0,"y":0}`)
	rec = httptest.NewRecorder()
	err := h.HandleCreateComponent(ctxWithSession(e, req, rec, s.ID()))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpdateComponentPatchAndValidation(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()
	d, err := s.Drop("label", 10, 10)
	require.NoError(t, err)

	req := jsonRequest(http.MethodPut, "/", `{"text":"Output","fontSize":16}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleUpdateComponent(ctxWithSession(e, req, rec, s.ID(), "componentId", d.ID)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text":"Output"`)

	// Font size outside 8..24 is rejected and the prior value retained.
	req = jsonRequest(http.MethodPut, "/", `{"fontSize":72}`)
	rec = httptest.NewRecorder()
	errBad := h.HandleUpdateComponent(ctxWithSession(e, req, rec, s.ID(), "componentId", d.ID))
	var apiErr *APIError
	require.ErrorAs(t, errBad, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	got, _ := s.Component(d.ID)
	assert.Equal(t, 16, got.FontSize)
}

func TestPointerEndpointDrivesDrag(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()
	d, err := s.Drop("button", 100, 100)
	require.NoError(t, err)

	press := func(body string) session.PointerResult {
		req := jsonRequest(http.MethodPost, "/", body)
		rec := httptest.NewRecorder()
		require.NoError(t, h.HandlePointer(ctxWithSession(e, req, rec, s.ID())))
		var res session.PointerResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return res
	}

	res := press(`{"event":"press","x":110,"y":110}`)
	assert.Equal(t, d.ID, res.SelectedID)
	assert.True(t, res.Dragging)

	res = press(`{"event":"move","x":150,"y":150}`)
	assert.True(t, res.Dragging)

	res = press(`{"event":"release"}`)
	assert.False(t, res.Dragging)

	moved, _ := s.Component(d.ID)
	assert.Equal(t, 140.0, moved.X)

	// Unknown events are rejected.
	req := jsonRequest(http.MethodPost, "/", `{"event":"hover","x":0,"y":0}`)
	rec := httptest.NewRecorder()
	errBad := h.HandlePointer(ctxWithSession(e, req, rec, s.ID()))
	var apiErr *APIError
	require.ErrorAs(t, errBad, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCanvasUpdateRejectsBelowMinimum(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	req := jsonRequest(http.MethodPut, "/", `{"width":100}`)
	rec := httptest.NewRecorder()
	err := h.HandleUpdateCanvas(ctxWithSession(e, req, rec, s.ID()))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.EqualValues(t, models.DefaultCanvasWidth, s.Canvas().Width)

	req = jsonRequest(http.MethodPut, "/", `{"width":800,"pluginName":"Big Synth"}`)
	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleUpdateCanvas(ctxWithSession(e, req, rec, s.ID())))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 800.0, s.Canvas().Width)
}

func TestSelectionEndpoints(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	// Nothing selected yet: conflict.
	rec := httptest.NewRecorder()
	err := h.HandleDeleteSelection(ctxWithSession(e, jsonRequest(http.MethodDelete, "/", ""), rec, s.ID()))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	_, err = s.Drop("knob", 50, 50)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleDuplicateSelection(ctxWithSession(e, jsonRequest(http.MethodPost, "/", ""), rec, s.ID())))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, s.Components(), 2)

	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleDeleteSelection(ctxWithSession(e, jsonRequest(http.MethodDelete, "/", ""), rec, s.ID())))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, s.Components(), 1)
}

func TestFrameEndpoint(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()
	_, err := s.Drop("button", 10, 10)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleFrame(ctxWithSession(e, jsonRequest(http.MethodGet, "/", ""), rec, s.ID())))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"op":"fillRect"`)
	assert.Contains(t, rec.Body.String(), `"ops":`)
}

func TestExportFormats(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()
	_, err := s.Drop("knob", 10, 10)
	require.NoError(t, err)

	cases := map[string]string{
		"source": "juce::Slider",
		"json":   `"type": "knob"`,
		"xml":    `<gui_layout>`,
	}
	for format, want := range cases {
		rec := httptest.NewRecorder()
		c := ctxWithSession(e, jsonRequest(http.MethodGet, "/", ""), rec, s.ID(), "format", format)
		require.NoError(t, h.HandleExport(c), format)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), want, format)
	}

	rec := httptest.NewRecorder()
	c := ctxWithSession(e, jsonRequest(http.MethodGet, "/", ""), rec, s.ID(), "format", "pdf")
	errBad := h.HandleExport(c)
	var apiErr *APIError
	require.ErrorAs(t, errBad, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestDesignSaveAndLoad(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()
	_, err := s.Drop("knob", 42, 42)
	require.NoError(t, err)

	// Save
	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/", `{"name":"Draft 1"}`)
	require.NoError(t, h.HandleSaveDesign(ctxWithSession(e, req, rec, s.ID())))
	require.Equal(t, http.StatusCreated, rec.Code)

	var info models.DesignInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Draft 1", info.Name)

	// List
	rec = httptest.NewRecorder()
	require.NoError(t, h.HandleListDesigns(e.NewContext(jsonRequest(http.MethodGet, "/", ""), rec)))
	assert.Contains(t, rec.Body.String(), info.ID)

	// Load into a fresh session
	s2 := mgr.NewSession()
	rec = httptest.NewRecorder()
	c := ctxWithSession(e, jsonRequest(http.MethodPost, "/", ""), rec, s2.ID(), "designId", info.ID)
	require.NoError(t, h.HandleLoadDesign(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s2.Components(), 1)
	assert.Equal(t, 42.0, s2.Components()[0].X)

	// Saving without a name is rejected.
	rec = httptest.NewRecorder()
	req = jsonRequest(http.MethodPost, "/", `{"name":"  "}`)
	errBad := h.HandleSaveDesign(ctxWithSession(e, req, rec, s.ID()))
	var apiErr *APIError
	require.ErrorAs(t, errBad, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestImportDocument(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	doc := `{"canvas":{"width":640,"height":480,"backgroundColor":"#101010","pluginName":"Imported"},` +
		`"components":[{"id":"x1","type":"button","x":5,"y":5,"width":80,"height":30,` +
		`"text":"Go","color":"#CCCCCC","textColor":"#000000","fontSize":12,"visible":true,"enabled":true}]}`

	req := jsonRequest(http.MethodPost, "/", doc)
	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleImportDocument(ctxWithSession(e, req, rec, s.ID())))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 640.0, s.Canvas().Width)
	require.Len(t, s.Components(), 1)
	assert.Equal(t, "x1", s.Components()[0].ID)

	// Garbage bodies are rejected without touching the session.
	req = jsonRequest(http.MethodPost, "/", "{broken")
	rec = httptest.NewRecorder()
	errBad := h.HandleImportDocument(ctxWithSession(e, req, rec, s.ID()))
	var apiErr *APIError
	require.ErrorAs(t, errBad, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Len(t, s.Components(), 1)
}

func TestPaletteEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleGetPalette(e.NewContext(jsonRequest(http.MethodGet, "/", ""), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"key":"gain"`)
	assert.Contains(t, rec.Body.String(), `"key":"bypass"`)
}

func TestSnapshotMsgpack(t *testing.T) {
	e := echo.New()
	h, mgr := newTestHandler(t)
	s := mgr.NewSession()

	rec := httptest.NewRecorder()
	require.NoError(t, h.HandleSessionSnapshot(ctxWithSession(e, jsonRequest(http.MethodGet, "/", ""), rec, s.ID())))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))
	assert.NotEmpty(t, rec.Body.Bytes())
}
