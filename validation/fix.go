package validation

import (
	"isoedit/diagram"
	"isoedit/logging"
)

// Fixable reports whether FixModel has a repair for issues of type t.
// Duplicate ids are the only issue that cannot be repaired.
func Fixable(t IssueType) bool {
	return t != DuplicateID
}

// FixModel returns a repaired copy of m together with the issues that were
// repaired. m itself is never modified. Repairs are applied in passes until
// no fixable issue remains, since removing an anchor can leave another
// anchor or connector invalid.
//
// Policy per issue type:
//   - unknown icon on a model item: the icon reference is cleared
//   - unknown color on any entity: the color reference is cleared
//   - anchor with zero or several references, or one that does not
//     resolve: the anchor is removed
//   - connector or road with fewer than two anchors: it is removed
//   - view item without a model item: a stub model item is created
func FixModel(m *diagram.Model) (*diagram.Model, []Issue) {
	fixed := m.Clone()
	var applied []Issue

	for {
		changed := false
		for _, issue := range ValidateModel(fixed) {
			if !Fixable(issue.Type) {
				continue
			}
			if applyFix(fixed, issue) {
				changed = true
				applied = append(applied, issue)
				logging.Logger().Info("auto-fixed model issue",
					"type", string(issue.Type), "path", issue.Path, "id", issue.ID)
			}
		}
		if !changed {
			break
		}
	}
	return fixed, applied
}

// applyFix repairs one issue in place and reports whether anything changed.
// Issues that an earlier fix of the same pass already resolved are no-ops.
func applyFix(m *diagram.Model, issue Issue) bool {
	if issue.Type == InvalidModelToIconRef {
		_, item, err := m.ModelItemByID(issue.ID)
		if err != nil || item.Icon == "" {
			return false
		}
		item.Icon = ""
		return true
	}

	_, view, err := m.ViewByID(issue.ViewID)
	if err != nil {
		return false
	}

	switch issue.Type {
	case InvalidViewItemToModelItemRef:
		if _, _, err := m.ModelItemByID(issue.ID); err == nil {
			return false
		}
		m.Items = append(m.Items, diagram.ModelItem{ID: issue.ID, Name: diagram.StubName(issue.ID)})
		return true

	case InvalidViewItemColorRef:
		_, item, err := view.ItemByID(issue.ID)
		return err == nil && clearString(&item.Color)
	case InvalidRectangleColorRef:
		_, r, err := view.RectangleByID(issue.ID)
		return err == nil && clearString(&r.Color)
	case InvalidVolumeColorRef:
		_, vol, err := view.VolumeByID(issue.ID)
		return err == nil && clearString(&vol.Color)
	case InvalidTextBoxColorRef:
		_, t, err := view.TextBoxByID(issue.ID)
		return err == nil && clearString(&t.Color)
	case InvalidConnectorColorRef:
		links := linksOf(view, issue.Kind)
		i := indexOfLink(*links, issue.ID)
		return i >= 0 && clearString(&(*links)[i].Color)

	case InvalidAnchorRef, InvalidAnchorToViewItemRef, InvalidAnchorToAnchorRef:
		links := linksOf(view, issue.Kind)
		i := indexOfLink(*links, issue.ID)
		if i < 0 {
			return false
		}
		anchors := (*links)[i].Anchors
		for j := range anchors {
			if anchors[j].ID == issue.AnchorID {
				(*links)[i].Anchors = append(anchors[:j:j], anchors[j+1:]...)
				return true
			}
		}
		return false

	case ConnectorTooFewAnchors:
		links := linksOf(view, issue.Kind)
		i := indexOfLink(*links, issue.ID)
		if i < 0 {
			return false
		}
		*links = append((*links)[:i:i], (*links)[i+1:]...)
		return true
	}
	return false
}

func linksOf(view *diagram.View, kind diagram.ItemType) *[]diagram.Connector {
	if kind == diagram.TypeRoad {
		return &view.Roads
	}
	return &view.Connectors
}

func indexOfLink(links []diagram.Connector, id string) int {
	for i := range links {
		if links[i].ID == id {
			return i
		}
	}
	return -1
}

func clearString(s *string) bool {
	if *s == "" {
		return false
	}
	*s = ""
	return true
}
