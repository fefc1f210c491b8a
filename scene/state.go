// Package scene applies structural edits to a diagram model and keeps the
// derived scene cache (connector and road paths, text box sizes) in step
// with it.
//
// Every reducer takes a State and returns a new State. The returned state
// never shares mutable storage with its input, so callers can keep the
// previous state for history. On error the input state is returned
// unchanged.
package scene

import (
	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/pathfinding"
)

// ConnectorState is the cached geometry of one connector or road.
type ConnectorState struct {
	Path pathfinding.Path `json:"path"`
}

// TextBoxState is the cached size of one text box.
type TextBoxState struct {
	Size geometry.TileSize `json:"size"`
}

// Scene caches geometry derived from one view of the model. It is never
// persisted and is recomputed whenever something it depends on changes.
type Scene struct {
	ViewID     string                    `json:"viewId"`
	Connectors map[string]ConnectorState `json:"connectors"`
	Roads      map[string]ConnectorState `json:"roads"`
	TextBoxes  map[string]TextBoxState   `json:"textBoxes"`
}

// NewScene returns an empty scene for viewID.
func NewScene(viewID string) *Scene {
	return &Scene{
		ViewID:     viewID,
		Connectors: make(map[string]ConnectorState),
		Roads:      make(map[string]ConnectorState),
		TextBoxes:  make(map[string]TextBoxState),
	}
}

// Clone deep copies the scene. Paths are copied tile by tile.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return NewScene("")
	}
	clone := &Scene{
		ViewID:     s.ViewID,
		Connectors: cloneLinkStates(s.Connectors),
		Roads:      cloneLinkStates(s.Roads),
		TextBoxes:  make(map[string]TextBoxState, len(s.TextBoxes)),
	}
	for id, t := range s.TextBoxes {
		clone.TextBoxes[id] = t
	}
	return clone
}

func cloneLinkStates(src map[string]ConnectorState) map[string]ConnectorState {
	dst := make(map[string]ConnectorState, len(src))
	for id, c := range src {
		p := c.Path
		p.Tiles = append([]geometry.Coords(nil), p.Tiles...)
		p.Turns = append([]int(nil), p.Turns...)
		dst[id] = ConnectorState{Path: p}
	}
	return dst
}

// State is the model together with the scene derived from one of its views.
type State struct {
	Model *diagram.Model
	Scene *Scene
}

// NewState builds the scene of viewID for m. The model is cloned; links
// that fail structural validation are pruned from the clone.
func NewState(m *diagram.Model, viewID string) (State, error) {
	return Rebuild(State{Model: m}, viewID)
}

// Clone deep copies model and scene.
func (s State) Clone() State {
	return State{Model: s.Model.Clone(), Scene: s.Scene.Clone()}
}

// View returns the view with id from the state's model.
func (s State) View(viewID string) (*diagram.View, error) {
	_, v, err := s.Model.ViewByID(viewID)
	return v, err
}

// tracks reports whether the scene caches viewID.
func (s State) tracks(viewID string) bool {
	return s.Scene != nil && s.Scene.ViewID == viewID
}

// begin clones s and resolves viewID inside the clone.
func begin(s State, viewID string) (State, *diagram.View, error) {
	if s.Model == nil {
		return s, nil, &diagram.NotFoundError{Kind: "View", ID: viewID}
	}
	next := s.Clone()
	v, err := next.View(viewID)
	if err != nil {
		return s, nil, err
	}
	return next, v, nil
}

func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

// removeAt returns a copy of items without index i. Emptied collections
// become nil so they round trip with collections that were never set.
func removeAt[T any](items []T, i int) []T {
	if len(items) == 1 {
		return nil
	}
	return append(items[:i:i], items[i+1:]...)
}

// set copies *src into *dst when src is non-nil.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
