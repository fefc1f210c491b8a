package diagram

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh random id for any entity or anchor.
func NewID() string {
	return uuid.NewString()
}

// StubName is the name given to model items synthesised for view items
// created without one.
func StubName(id string) string {
	return fmt.Sprintf("Item %s", id)
}

// DuplicateIDs returns every id that appears more than once among the
// entities of a view, in first-seen order.
func DuplicateIDs(v *View) []string {
	seen := make(map[string]int)
	var dups []string
	note := func(id string) {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	for _, i := range v.Items {
		note(i.ID)
	}
	for _, r := range v.Rectangles {
		note(r.ID)
	}
	for _, vol := range v.Volumes {
		note(vol.ID)
	}
	for _, c := range v.Connectors {
		note(c.ID)
		for _, a := range c.Anchors {
			note(a.ID)
		}
	}
	for _, r := range v.Roads {
		note(r.ID)
		for _, a := range r.Anchors {
			note(a.ID)
		}
	}
	for _, t := range v.TextBoxes {
		note(t.ID)
	}
	return dups
}
