// Package validation checks a model for structural problems such as
// dangling references and undersized connectors, and repairs the ones
// that have a fixed auto-fix policy.
package validation

import (
	"fmt"

	"isoedit/diagram"
)

// IssueType is the machine readable kind of a validation issue.
type IssueType string

const (
	InvalidAnchorRef              IssueType = "INVALID_ANCHOR_REF"
	InvalidAnchorToViewItemRef    IssueType = "INVALID_ANCHOR_TO_VIEW_ITEM_REF"
	InvalidAnchorToAnchorRef      IssueType = "INVALID_ANCHOR_TO_ANCHOR_REF"
	ConnectorTooFewAnchors        IssueType = "CONNECTOR_TOO_FEW_ANCHORS"
	InvalidConnectorColorRef      IssueType = "INVALID_CONNECTOR_COLOR_REF"
	InvalidRectangleColorRef      IssueType = "INVALID_RECTANGLE_COLOR_REF"
	InvalidVolumeColorRef         IssueType = "INVALID_VOLUME_COLOR_REF"
	InvalidTextBoxColorRef        IssueType = "INVALID_TEXTBOX_COLOR_REF"
	InvalidViewItemColorRef       IssueType = "INVALID_VIEW_ITEM_COLOR_REF"
	InvalidViewItemToModelItemRef IssueType = "INVALID_VIEW_ITEM_TO_MODEL_ITEM_REF"
	InvalidModelToIconRef         IssueType = "INVALID_MODEL_TO_ICON_REF"
	DuplicateID                   IssueType = "DUPLICATE_ID"
)

// Issue is one structural problem. Kind and ID name the offending entity;
// AnchorID is set for anchor level issues.
type Issue struct {
	Type     IssueType
	Kind     diagram.ItemType
	ViewID   string
	ID       string
	AnchorID string
	Path     string
	Message  string
}

// String formats the issue with its path for user facing reports.
func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("[%s] %s", i.Type, i.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Path, i.Type, i.Message)
}

// Validator accumulates issues for one model.
type Validator struct {
	model  *diagram.Model
	issues []Issue
}

// NewValidator creates a validator for m.
func NewValidator(m *diagram.Model) *Validator {
	return &Validator{model: m}
}

// Issues returns everything reported so far.
func (v *Validator) Issues() []Issue {
	return v.issues
}

// ValidateModel returns every issue in m.
func ValidateModel(m *diagram.Model) []Issue {
	v := NewValidator(m)
	v.checkModel()
	return v.issues
}

// ValidateView returns the issues of a single view of m.
func ValidateView(m *diagram.Model, view *diagram.View) []Issue {
	v := NewValidator(m)
	v.checkView(viewIndex(m, view.ID), view)
	return v.issues
}

// ValidateConnector checks a connector or road (kind TypeConnector or
// TypeRoad) of view, including each of its anchors.
func ValidateConnector(m *diagram.Model, view *diagram.View, kind diagram.ItemType, c *diagram.Connector) []Issue {
	v := NewValidator(m)
	v.checkConnector(viewIndex(m, view.ID), view, kind, linkIndex(view, kind, c.ID), c)
	return v.issues
}

// ValidateConnectorAnchor checks that anchor sets exactly one reference
// and that the reference resolves inside view.
func ValidateConnectorAnchor(view *diagram.View, kind diagram.ItemType, ownerID string, anchor *diagram.Anchor) []Issue {
	v := &Validator{}
	v.checkAnchor(view, kind, ownerID, "", anchor)
	return v.issues
}

func (v *Validator) checkModel() {
	m := v.model
	seenItems := make(map[string]bool, len(m.Items))
	for i, item := range m.Items {
		path := fmt.Sprintf("items[%d]", i)
		if seenItems[item.ID] {
			v.add(Issue{Type: DuplicateID, ID: item.ID, Path: path},
				"model item id %q is used more than once", item.ID)
		}
		seenItems[item.ID] = true
		if item.Icon != "" && !m.HasIcon(item.Icon) {
			v.add(Issue{Type: InvalidModelToIconRef, ID: item.ID, Path: path + ".icon"},
				"model item %s references unknown icon %q", item.ID, item.Icon)
		}
	}

	seenViews := make(map[string]bool, len(m.Views))
	for i := range m.Views {
		view := &m.Views[i]
		if seenViews[view.ID] {
			v.add(Issue{Type: DuplicateID, ViewID: view.ID, ID: view.ID, Path: fmt.Sprintf("views[%d]", i)},
				"view id %q is used more than once", view.ID)
		}
		seenViews[view.ID] = true
		v.checkView(i, view)
	}
}

func (v *Validator) checkView(index int, view *diagram.View) {
	base := viewPath(index)

	for _, id := range diagram.DuplicateIDs(view) {
		v.add(Issue{Type: DuplicateID, ViewID: view.ID, ID: id, Path: base},
			"id %q is used by more than one entity of view %s", id, view.ID)
	}

	for i, item := range view.Items {
		path := fmt.Sprintf("%s.items[%d]", base, i)
		if _, _, err := v.model.ModelItemByID(item.ID); err != nil {
			v.add(Issue{Type: InvalidViewItemToModelItemRef, Kind: diagram.TypeItem, ViewID: view.ID, ID: item.ID, Path: path},
				"view item %s has no matching model item", item.ID)
		}
		v.checkColor(item.Color, InvalidViewItemColorRef, diagram.TypeItem, view.ID, item.ID, path)
	}
	for i, r := range view.Rectangles {
		path := fmt.Sprintf("%s.rectangles[%d]", base, i)
		v.checkColor(r.Color, InvalidRectangleColorRef, diagram.TypeRectangle, view.ID, r.ID, path)
	}
	for i, vol := range view.Volumes {
		path := fmt.Sprintf("%s.volumes[%d]", base, i)
		v.checkColor(vol.Color, InvalidVolumeColorRef, diagram.TypeVolume, view.ID, vol.ID, path)
	}
	for i := range view.Connectors {
		v.checkConnector(index, view, diagram.TypeConnector, i, &view.Connectors[i])
	}
	for i := range view.Roads {
		v.checkConnector(index, view, diagram.TypeRoad, i, &view.Roads[i])
	}
	for i, t := range view.TextBoxes {
		path := fmt.Sprintf("%s.textBoxes[%d]", base, i)
		v.checkColor(t.Color, InvalidTextBoxColorRef, diagram.TypeTextBox, view.ID, t.ID, path)
	}
}

func (v *Validator) checkConnector(viewIdx int, view *diagram.View, kind diagram.ItemType, index int, c *diagram.Connector) {
	collection := "connectors"
	if kind == diagram.TypeRoad {
		collection = "roads"
	}
	path := fmt.Sprintf("%s.%s[%d]", viewPath(viewIdx), collection, index)

	if len(c.Anchors) < 2 {
		v.add(Issue{Type: ConnectorTooFewAnchors, Kind: kind, ViewID: view.ID, ID: c.ID, Path: path + ".anchors"},
			"%s %s has %d anchors, at least 2 are required", kindName(kind), c.ID, len(c.Anchors))
	}
	v.checkColor(c.Color, InvalidConnectorColorRef, kind, view.ID, c.ID, path)
	for i := range c.Anchors {
		v.checkAnchor(view, kind, c.ID, fmt.Sprintf("%s.anchors[%d].ref", path, i), &c.Anchors[i])
	}
}

func (v *Validator) checkAnchor(view *diagram.View, kind diagram.ItemType, ownerID, path string, a *diagram.Anchor) {
	base := Issue{Kind: kind, ViewID: view.ID, ID: ownerID, AnchorID: a.ID, Path: path}

	if n := a.Ref.Count(); n != 1 {
		base.Type = InvalidAnchorRef
		v.add(base, "anchor %s sets %d references, exactly one is required", a.ID, n)
		return
	}
	switch {
	case a.Ref.Item != "":
		if _, _, err := view.ItemByID(a.Ref.Item); err != nil {
			base.Type = InvalidAnchorToViewItemRef
			v.add(base, "anchor %s references unknown view item %q", a.ID, a.Ref.Item)
		}
	case a.Ref.Anchor != "":
		if !resolvesToAnchor(view, a) {
			base.Type = InvalidAnchorToAnchorRef
			v.add(base, "anchor %s references anchor %q which does not resolve", a.ID, a.Ref.Anchor)
		}
	}
}

// resolvesToAnchor follows anchor to anchor references until one ends on
// an item or tile. Missing targets and cycles do not resolve.
func resolvesToAnchor(view *diagram.View, a *diagram.Anchor) bool {
	visited := map[string]bool{a.ID: true}
	current := a
	for current.Ref.Anchor != "" {
		next := current.Ref.Anchor
		if visited[next] {
			return false
		}
		visited[next] = true
		_, target, err := view.AnchorByID(next)
		if err != nil || target.Ref.Count() != 1 {
			return false
		}
		current = target
	}
	if current.Ref.Item != "" {
		_, _, err := view.ItemByID(current.Ref.Item)
		return err == nil
	}
	return true
}

func (v *Validator) checkColor(color string, typ IssueType, kind diagram.ItemType, viewID, id, path string) {
	if color == "" || v.model.HasColor(color) {
		return
	}
	v.add(Issue{Type: typ, Kind: kind, ViewID: viewID, ID: id, Path: path + ".color"},
		"%s %s references unknown color %q", kindName(kind), id, color)
}

// add appends an issue with a formatted message.
func (v *Validator) add(issue Issue, format string, args ...interface{}) {
	issue.Message = fmt.Sprintf(format, args...)
	v.issues = append(v.issues, issue)
}

func kindName(kind diagram.ItemType) string {
	switch kind {
	case diagram.TypeItem:
		return "view item"
	case diagram.TypeRectangle:
		return "rectangle"
	case diagram.TypeVolume:
		return "volume"
	case diagram.TypeRoad:
		return "road"
	case diagram.TypeTextBox:
		return "text box"
	default:
		return "connector"
	}
}

func viewIndex(m *diagram.Model, id string) int {
	if m == nil {
		return -1
	}
	i, _, _ := m.ViewByID(id)
	return i
}

func viewPath(index int) string {
	if index < 0 {
		return "views[?]"
	}
	return fmt.Sprintf("views[%d]", index)
}

func linkIndex(view *diagram.View, kind diagram.ItemType, id string) int {
	if kind == diagram.TypeRoad {
		i, _, _ := view.RoadByID(id)
		return i
	}
	i, _, _ := view.ConnectorByID(id)
	return i
}
