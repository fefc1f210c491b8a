package scene

import (
	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/logging"
	"isoedit/pathfinding"
	"isoedit/validation"
)

// linkKind abstracts over connectors and roads, which share a shape and
// differ only in where they are stored.
type linkKind struct {
	typ   diagram.ItemType
	name  string
	links func(*diagram.View) *[]diagram.Connector
	cache func(*Scene) map[string]ConnectorState
}

var (
	connectorKind = linkKind{
		typ:   diagram.TypeConnector,
		name:  "Connector",
		links: func(v *diagram.View) *[]diagram.Connector { return &v.Connectors },
		cache: func(s *Scene) map[string]ConnectorState {
			if s == nil {
				return nil
			}
			return s.Connectors
		},
	}
	roadKind = linkKind{
		typ:   diagram.TypeRoad,
		name:  "Road",
		links: func(v *diagram.View) *[]diagram.Connector { return &v.Roads },
		cache: func(s *Scene) map[string]ConnectorState {
			if s == nil {
				return nil
			}
			return s.Roads
		},
	}
	linkKinds = []linkKind{connectorKind, roadKind}
)

func linkKindOf(t diagram.ItemType) linkKind {
	if t == diagram.TypeRoad || t == diagram.TypeRoadAnchor {
		return roadKind
	}
	return connectorKind
}

func (k linkKind) find(view *diagram.View, id string) (int, *diagram.Connector, error) {
	links := *k.links(view)
	for i := range links {
		if links[i].ID == id {
			return i, &links[i], nil
		}
	}
	return -1, nil, &diagram.NotFoundError{Kind: k.name, ID: id}
}

// ConnectorPatch is a partial update of a connector or road. Nil fields
// are left unchanged; a non-nil Anchors replaces the anchor list.
type ConnectorPatch struct {
	Description *string
	Color       *string
	Width       *int
	Style       *diagram.LineStyle
	Anchors     []diagram.Anchor
}

func (p ConnectorPatch) apply(c *diagram.Connector) {
	set(&c.Description, p.Description)
	set(&c.Color, p.Color)
	set(&c.Width, p.Width)
	set(&c.Style, p.Style)
	if p.Anchors != nil {
		anchors := make([]diagram.Anchor, len(p.Anchors))
		for i, a := range p.Anchors {
			anchors[i] = a.Clone()
		}
		c.Anchors = anchors
	}
}

// CreateConnector adds c at the front of the view's connectors and caches
// its path.
func CreateConnector(s State, viewID string, c diagram.Connector) (State, error) {
	return createLink(s, viewID, connectorKind, c)
}

// UpdateConnector merges patch into the connector and recomputes its path.
func UpdateConnector(s State, viewID, id string, patch ConnectorPatch) (State, error) {
	return updateLink(s, viewID, connectorKind, id, patch)
}

// DeleteConnector removes the connector. Anchors of other links that
// referenced its anchors are removed, and links left with fewer than two
// anchors are deleted too.
func DeleteConnector(s State, viewID, id string) (State, error) {
	return deleteLink(s, viewID, connectorKind, id)
}

// SyncConnector revalidates the connector's anchors. A structurally
// invalid connector is deleted; otherwise its path is recomputed.
func SyncConnector(s State, viewID, id string) (State, error) {
	return syncLinkState(s, viewID, connectorKind, id)
}

// CreateRoad adds r at the front of the view's roads and caches its path.
func CreateRoad(s State, viewID string, r diagram.Connector) (State, error) {
	return createLink(s, viewID, roadKind, r)
}

// UpdateRoad merges patch into the road and recomputes its path.
func UpdateRoad(s State, viewID, id string, patch ConnectorPatch) (State, error) {
	return updateLink(s, viewID, roadKind, id, patch)
}

// DeleteRoad removes the road with the same cascade as DeleteConnector.
func DeleteRoad(s State, viewID, id string) (State, error) {
	return deleteLink(s, viewID, roadKind, id)
}

// SyncRoad is SyncConnector for roads.
func SyncRoad(s State, viewID, id string) (State, error) {
	return syncLinkState(s, viewID, roadKind, id)
}

func createLink(s State, viewID string, kind linkKind, c diagram.Connector) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	links := kind.links(view)
	*links = prepend(*links, c.Clone())

	next, err = commitView(s, next, viewID)
	if err != nil {
		return s, err
	}
	view, _ = next.View(viewID)
	syncLink(&next, view, viewID, kind, c.ID)
	return next, nil
}

func updateLink(s State, viewID string, kind linkKind, id string, patch ConnectorPatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	_, c, err := kind.find(view, id)
	if err != nil {
		return s, err
	}
	patch.apply(c)

	next, err = commitView(s, next, viewID)
	if err != nil {
		return s, err
	}
	view, _ = next.View(viewID)
	syncLink(&next, view, viewID, kind, id)
	return next, nil
}

func deleteLink(s State, viewID string, kind linkKind, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	i, _, err := kind.find(view, id)
	if err != nil {
		return s, err
	}
	links := kind.links(view)
	*links = removeAt(*links, i)
	if next.tracks(viewID) {
		delete(kind.cache(next.Scene), id)
	}
	repairLinks(&next, view, viewID)
	return next, nil
}

func syncLinkState(s State, viewID string, kind linkKind, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	if _, _, err := kind.find(view, id); err != nil {
		return s, err
	}
	if !syncLink(&next, view, viewID, kind, id) {
		repairLinks(&next, view, viewID)
	}
	return next, nil
}

// structural reports whether an issue makes a link unusable. Color issues
// do not.
func structural(issue validation.Issue) bool {
	switch issue.Type {
	case validation.InvalidAnchorRef,
		validation.InvalidAnchorToViewItemRef,
		validation.InvalidAnchorToAnchorRef,
		validation.ConnectorTooFewAnchors:
		return true
	}
	return false
}

// syncLink validates one link in place. Invalid links are removed from
// the view and the scene; valid ones get a fresh path. It reports whether
// the link survived.
func syncLink(st *State, view *diagram.View, viewID string, kind linkKind, id string) bool {
	i, c, err := kind.find(view, id)
	if err != nil {
		return false
	}

	valid := true
	for _, issue := range validation.ValidateConnector(st.Model, view, kind.typ, c) {
		if structural(issue) {
			valid = false
			break
		}
	}
	var tiles []geometry.Coords
	if valid {
		tiles, err = anchorTiles(view, c.Anchors)
		valid = err == nil
	}

	if !valid {
		logging.Logger().Debug("removing invalid link", "kind", kind.name, "id", id)
		links := kind.links(view)
		*links = removeAt(*links, i)
		if st.tracks(viewID) {
			delete(kind.cache(st.Scene), id)
		}
		return false
	}

	if st.tracks(viewID) {
		kind.cache(st.Scene)[id] = ConnectorState{Path: pathfinding.Walk(tiles)}
		logging.Logger().Debug("recomputed path", "kind", kind.name, "id", id)
	}
	return true
}

// repairLinks removes anchors that no longer resolve and links left with
// fewer than two anchors, repeating until stable, then recomputes the
// path of every link that lost an anchor.
func repairLinks(st *State, view *diagram.View, viewID string) {
	touched := make(map[diagram.ItemReference]bool)
	for changed := true; changed; {
		changed = false
		for _, kind := range linkKinds {
			links := kind.links(view)
			for i := 0; i < len(*links); i++ {
				c := &(*links)[i]
				kept := c.Anchors[:0:0]
				for _, a := range c.Anchors {
					if len(validation.ValidateConnectorAnchor(view, kind.typ, c.ID, &a)) == 0 {
						kept = append(kept, a)
					}
				}
				if len(kept) != len(c.Anchors) {
					c.Anchors = kept
					touched[diagram.ItemReference{Type: kind.typ, ID: c.ID}] = true
					changed = true
				}
				if len(c.Anchors) < 2 {
					id := c.ID
					*links = removeAt(*links, i)
					i--
					if st.tracks(viewID) {
						delete(kind.cache(st.Scene), id)
					}
					delete(touched, diagram.ItemReference{Type: kind.typ, ID: id})
					changed = true
				}
			}
		}
	}
	for ref := range touched {
		syncLink(st, view, viewID, linkKindOf(ref.Type), ref.ID)
	}
}
