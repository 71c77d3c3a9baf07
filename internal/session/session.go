// Package session owns live designer state: the canvas configuration, the
// insertion-ordered descriptor collection, single selection and the drag
// state machine, plus the Manager that tracks open sessions.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sblake94/plugin-gui-designer/internal/component"
	"github.com/sblake94/plugin-gui-designer/internal/geom"
	"github.com/sblake94/plugin-gui-designer/internal/models"
)

var (
	// ErrEmptyDropPayload marks a drop event lacking a kind tag. The drop is
	// a no-op; the session is unchanged.
	ErrEmptyDropPayload = errors.New("drop payload has no component kind")
	// ErrNoSelection marks an operation that needs a selected component.
	ErrNoSelection = errors.New("no component is selected")
	// ErrComponentNotFound marks an unknown component id.
	ErrComponentNotFound = errors.New("component not found")
	// ErrInvalidZoom marks a non-positive zoom factor.
	ErrInvalidZoom = errors.New("zoom factor must be positive")
)

var validate = validator.New()

// Notifier receives fire-and-forget component creation events. Failures are
// the notifier's problem; the session never observes them.
type Notifier interface {
	ComponentCreated(kind models.Kind, x, y float64)
}

// DragPhase is the explicit pointer gesture state.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
)

type dragState struct {
	phase   DragPhase
	offsetX float64
	offsetY float64
}

// Session is one open design. All mutations go through its methods; the
// model is single-mutator, so a plain mutex serializes the transport layer's
// concurrent deliveries.
type Session struct {
	id string

	mu           sync.Mutex
	canvas       models.CanvasConfig
	order        []string
	components   map[string]*models.Descriptor
	selectedID   string
	drag         dragState
	zoom         float64
	seq          int
	created      time.Time
	lastAccessed time.Time

	notifier Notifier
	log      zerolog.Logger
}

func newSession(id string, canvas models.CanvasConfig, notifier Notifier, log zerolog.Logger) *Session {
	now := time.Now()
	return &Session{
		id:           id,
		canvas:       canvas,
		components:   make(map[string]*models.Descriptor),
		zoom:         1,
		created:      now,
		lastAccessed: now,
		notifier:     notifier,
		log:          log.With().Str("session", shortID(id)).Logger(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State is a consistent snapshot of the session for API responses.
type State struct {
	ID         string               `json:"id"`
	Canvas     models.CanvasConfig  `json:"canvas"`
	Components []*models.Descriptor `json:"components"`
	SelectedID string               `json:"selectedId,omitempty"`
	Zoom       float64              `json:"zoom"`
	Dragging   bool                 `json:"dragging"`
}

// State returns a snapshot with cloned descriptors.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:         s.id,
		Canvas:     s.canvas,
		Components: s.cloneAllLocked(),
		SelectedID: s.selectedID,
		Zoom:       s.zoom,
		Dragging:   s.drag.phase == DragActive,
	}
}

// Document returns the persistable layout: canvas configuration plus cloned
// descriptors in insertion order. Selection and drag state are not part of
// the document.
func (s *Session) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	comps := s.cloneAllLocked()
	return models.Document{Canvas: s.canvas, Components: comps}
}

// Components returns cloned descriptors in insertion order.
func (s *Session) Components() []*models.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneAllLocked()
}

// Component returns a clone of one descriptor by id.
func (s *Session) Component(id string) (*models.Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.components[id]
	if !ok {
		return nil, false
	}
	return d.Clone(d.ID), true
}

// SelectedID returns the id of the selected descriptor, or "".
func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// Canvas returns the current canvas configuration.
func (s *Session) Canvas() models.CanvasConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// Zoom returns the device-to-canvas zoom factor.
func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// SetZoom updates the zoom factor used for pointer coordinate conversion.
func (s *Session) SetZoom(z float64) error {
	if z <= 0 {
		return ErrInvalidZoom
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = z
	return nil
}

// Drop places a new component from a toolbox drag-drop or click. The kind
// tag is required but does not have to be recognized: unknown tags degrade
// to a generic descriptor. Coordinates are device pixels.
func (s *Session) Drop(kindTag string, deviceX, deviceY float64) (*models.Descriptor, error) {
	if strings.TrimSpace(kindTag) == "" {
		return nil, ErrEmptyDropPayload
	}
	kind := models.ParseKind(kindTag)
	return s.Place(component.Create(kind, "", 0, 0), deviceX, deviceY), nil
}

// Place inserts a prepared descriptor at the given device position: the
// position is zoom-converted and clamped using the descriptor's actual size,
// a fresh id is assigned, the component is auto-selected, and the creation
// notification is dispatched. The returned descriptor is a clone.
func (s *Session) Place(d *models.Descriptor, deviceX, deviceY float64) *models.Descriptor {
	s.mu.Lock()

	x := deviceX / s.zoom
	y := deviceY / s.zoom

	d.ID = uuid.New().String()
	d.X = clampToCanvas(x, d.Width, s.canvas.Width)
	d.Y = clampToCanvas(y, d.Height, s.canvas.Height)

	s.seq++
	if d.Text == d.Type.DisplayName() {
		d.Text = fmt.Sprintf("%s %d", d.Type.DisplayName(), s.seq)
	}

	s.components[d.ID] = d
	s.order = append(s.order, d.ID)
	s.selectedID = d.ID

	out := d.Clone(d.ID)
	s.mu.Unlock()

	s.log.Debug().Str("kind", string(out.Type)).Float64("x", out.X).Float64("y", out.Y).Msg("component placed")
	if s.notifier != nil {
		s.notifier.ComponentCreated(out.Type, out.X, out.Y)
	}
	return out
}

// PointerResult describes the selection and drag state after a pointer
// event.
type PointerResult struct {
	SelectedID string `json:"selectedId,omitempty"`
	Dragging   bool   `json:"dragging"`
}

// PointerPress hit-tests the press point against all descriptors, topmost
// first (last inserted wins on overlap). A hit selects the descriptor and
// begins a drag with the pointer-to-origin offset recorded; a miss clears
// the selection.
func (s *Session) PointerPress(deviceX, deviceY float64) PointerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	px := deviceX / s.zoom
	py := deviceY / s.zoom

	hit := ""
	for _, id := range s.order {
		if s.components[id].Contains(px, py) {
			hit = id
		}
	}

	if hit == "" {
		s.selectedID = ""
		s.drag = dragState{}
		return s.pointerResultLocked()
	}

	s.selectedID = hit
	d := s.components[hit]
	s.drag = dragState{phase: DragActive, offsetX: px - d.X, offsetY: py - d.Y}
	return s.pointerResultLocked()
}

// PointerMove repositions the dragged descriptor from the current pointer
// position minus the recorded offset, clamped so it stays fully on-canvas.
// Outside an active drag it is a no-op.
func (s *Session) PointerMove(deviceX, deviceY float64) PointerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag.phase != DragActive {
		return s.pointerResultLocked()
	}
	d, ok := s.components[s.selectedID]
	if !ok {
		s.drag = dragState{}
		return s.pointerResultLocked()
	}

	px := deviceX / s.zoom
	py := deviceY / s.zoom
	d.X = clampToCanvas(px-s.drag.offsetX, d.Width, s.canvas.Width)
	d.Y = clampToCanvas(py-s.drag.offsetY, d.Height, s.canvas.Height)
	return s.pointerResultLocked()
}

// PointerRelease ends any pending drag unconditionally.
func (s *Session) PointerRelease() PointerResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = dragState{}
	return s.pointerResultLocked()
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.phase == DragActive
}

// DeleteSelected removes the selected descriptor and clears the selection.
// It reports whether anything was removed.
func (s *Session) DeleteSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedID == "" {
		return false
	}
	s.removeLocked(s.selectedID)
	s.selectedID = ""
	s.drag = dragState{}
	return true
}

// Duplicate clones the selected descriptor offset by (20, 20), clamped to
// the canvas, and auto-selects the copy.
func (s *Session) Duplicate() (*models.Descriptor, error) {
	s.mu.Lock()

	src, ok := s.components[s.selectedID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}

	c := src.Clone(uuid.New().String())
	c.X = clampToCanvas(src.X+20, c.Width, s.canvas.Width)
	c.Y = clampToCanvas(src.Y+20, c.Height, s.canvas.Height)

	s.components[c.ID] = c
	s.order = append(s.order, c.ID)
	s.selectedID = c.ID

	out := c.Clone(c.ID)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ComponentCreated(out.Type, out.X, out.Y)
	}
	return out, nil
}

// Clear removes every descriptor and clears the selection. The canvas
// configuration is untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[string]*models.Descriptor)
	s.order = nil
	s.selectedID = ""
	s.drag = dragState{}
}

// Reset starts a new project: empty collection and default canvas.
func (s *Session) Reset(canvas models.CanvasConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = canvas
	s.components = make(map[string]*models.Descriptor)
	s.order = nil
	s.selectedID = ""
	s.drag = dragState{}
	s.seq = 0
}

// CanvasUpdate is a partial canvas reconfiguration. Nil fields are left
// unchanged.
type CanvasUpdate struct {
	Width              *float64 `json:"width"`
	Height             *float64 `json:"height"`
	BackgroundColor    *string  `json:"backgroundColor"`
	PluginName         *string  `json:"pluginName"`
	PluginManufacturer *string  `json:"pluginManufacturer"`
	GridSize           *int     `json:"gridSize"`
	ShowGrid           *bool    `json:"showGrid"`
}

// ConfigureCanvas applies a partial update. The merged configuration is
// validated as a whole; on failure the prior configuration is retained and
// the error returned.
func (s *Session) ConfigureCanvas(u CanvasUpdate) (models.CanvasConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.canvas
	if u.Width != nil {
		next.Width = *u.Width
	}
	if u.Height != nil {
		next.Height = *u.Height
	}
	if u.BackgroundColor != nil {
		next.BackgroundColor = *u.BackgroundColor
	}
	if u.PluginName != nil {
		next.PluginName = *u.PluginName
	}
	if u.PluginManufacturer != nil {
		next.PluginManufacturer = *u.PluginManufacturer
	}
	if u.GridSize != nil {
		next.GridSize = *u.GridSize
	}
	if u.ShowGrid != nil {
		next.ShowGrid = *u.ShowGrid
	}

	if err := validate.Struct(next); err != nil {
		return s.canvas, fmt.Errorf("invalid canvas configuration: %w", err)
	}

	s.canvas = next
	return s.canvas, nil
}

// ComponentUpdate is a partial descriptor mutation from the properties
// editor. Nil fields are left unchanged.
type ComponentUpdate struct {
	X            *float64  `json:"x"`
	Y            *float64  `json:"y"`
	Width        *float64  `json:"width" validate:"omitempty,gt=0"`
	Height       *float64  `json:"height" validate:"omitempty,gt=0"`
	Text         *string   `json:"text"`
	Color        *string   `json:"color"`
	TextColor    *string   `json:"textColor"`
	FontSize     *int      `json:"fontSize" validate:"omitempty,min=8,max=24"`
	MinValue     *float64  `json:"minValue"`
	MaxValue     *float64  `json:"maxValue"`
	DefaultValue *float64  `json:"defaultValue"`
	ThumbColor   *string   `json:"thumbColor"`
	Visible      *bool     `json:"visible"`
	Enabled      *bool     `json:"enabled"`
	Pressed      *bool     `json:"pressed"`
	Toggled      *bool     `json:"toggled"`
	AltColor     *string   `json:"altColor"`
	Level        *float64  `json:"level" validate:"omitempty,min=0,max=1"`
	Options      *[]string `json:"options"`
	// SelectedIndex below zero clears the combo box selection.
	SelectedIndex *int    `json:"selectedIndex"`
	Align         *string `json:"align" validate:"omitempty,oneof=left center right"`
	Placeholder   *string `json:"placeholder"`
}

// UpdateComponent applies a property patch to one descriptor. Position is
// not clamped here: only drag-time moves clamp, matching the editor's
// write-through collaborator contract. The combo box selected index is kept
// bounded to the option list.
func (s *Session) UpdateComponent(id string, u ComponentUpdate) (*models.Descriptor, error) {
	if err := validate.Struct(u); err != nil {
		return nil, fmt.Errorf("invalid component update: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.components[id]
	if !ok {
		return nil, ErrComponentNotFound
	}

	if u.X != nil {
		d.X = *u.X
	}
	if u.Y != nil {
		d.Y = *u.Y
	}
	if u.Width != nil {
		d.Width = *u.Width
	}
	if u.Height != nil {
		d.Height = *u.Height
	}
	if u.Text != nil {
		d.Text = *u.Text
	}
	if u.Color != nil {
		d.Color = *u.Color
	}
	if u.TextColor != nil {
		d.TextColor = *u.TextColor
	}
	if u.FontSize != nil {
		d.FontSize = *u.FontSize
	}
	if u.MinValue != nil {
		d.MinValue = *u.MinValue
	}
	if u.MaxValue != nil {
		d.MaxValue = *u.MaxValue
	}
	if u.DefaultValue != nil {
		d.DefaultValue = *u.DefaultValue
	}
	if u.ThumbColor != nil {
		d.ThumbColor = *u.ThumbColor
	}
	if u.Visible != nil {
		d.Visible = *u.Visible
	}
	if u.Enabled != nil {
		d.Enabled = *u.Enabled
	}
	if u.Pressed != nil {
		d.Pressed = *u.Pressed
	}
	if u.Toggled != nil {
		d.Toggled = *u.Toggled
	}
	if u.AltColor != nil {
		d.AltColor = *u.AltColor
	}
	if u.Level != nil {
		d.Level = *u.Level
	}
	if u.Options != nil {
		d.Options = append([]string(nil), (*u.Options)...)
	}
	if u.SelectedIndex != nil {
		if *u.SelectedIndex < 0 {
			d.SelectedIndex = nil
		} else {
			i := *u.SelectedIndex
			d.SelectedIndex = &i
		}
	}
	if u.Align != nil {
		d.Align = *u.Align
	}
	if u.Placeholder != nil {
		d.Placeholder = *u.Placeholder
	}

	// Keep the combo selection a valid index or none.
	if d.SelectedIndex != nil && (*d.SelectedIndex >= len(d.Options)) {
		d.SelectedIndex = nil
	}

	return d.Clone(d.ID), nil
}

// Restore replaces the whole session content from a persisted document.
// Descriptor ids and insertion order are preserved; selection is cleared.
func (s *Session) Restore(doc *models.Document) error {
	if doc == nil {
		return errors.New("nil layout document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	canvas := doc.Canvas
	if canvas.Width == 0 && canvas.Height == 0 {
		canvas = models.DefaultCanvasConfig()
	}

	components := make(map[string]*models.Descriptor, len(doc.Components))
	var order []string
	for _, d := range doc.Components {
		if d == nil || d.ID == "" {
			continue
		}
		if _, dup := components[d.ID]; dup {
			return fmt.Errorf("duplicate component id %q in document", d.ID)
		}
		components[d.ID] = d.Clone(d.ID)
		order = append(order, d.ID)
	}

	s.canvas = canvas
	s.components = components
	s.order = order
	s.selectedID = ""
	s.drag = dragState{}
	s.seq = len(order)
	return nil
}

// Touch refreshes the keep-alive timestamp.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessed = time.Now()
}

// LastAccessed returns the keep-alive timestamp.
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessed
}

func (s *Session) pointerResultLocked() PointerResult {
	return PointerResult{SelectedID: s.selectedID, Dragging: s.drag.phase == DragActive}
}

func (s *Session) cloneAllLocked() []*models.Descriptor {
	out := make([]*models.Descriptor, 0, len(s.order))
	for _, id := range s.order {
		d := s.components[id]
		out = append(out, d.Clone(d.ID))
	}
	return out
}

func (s *Session) removeLocked(id string) {
	delete(s.components, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func clampToCanvas(v, size, limit float64) float64 {
	max := limit - size
	if max < 0 {
		max = 0
	}
	return geom.Clamp(v, 0, max)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
