package scene

import (
	"errors"
	"fmt"
	"strings"

	"isoedit/logging"
	"isoedit/validation"
)

// ErrLastView is returned when deleting the only view of a model.
var ErrLastView = errors.New("isoedit: cannot delete the last view")

// ValidationError rejects an edit that would leave the model with new
// structural issues. The state returned alongside it is the unchanged
// input state.
type ValidationError struct {
	ViewID string
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("isoedit: edit rejected with %d validation issue(s): %s",
		len(e.Issues), strings.Join(msgs, "; "))
}

func issueKey(i validation.Issue) string {
	return string(i.Type) + "\x00" + string(i.Kind) + "\x00" + i.ID + "\x00" + i.AnchorID
}

// introduced returns the issues in after that are not in before.
func introduced(before, after []validation.Issue) []validation.Issue {
	seen := make(map[string]bool, len(before))
	for _, i := range before {
		seen[issueKey(i)] = true
	}
	var fresh []validation.Issue
	for _, i := range after {
		if !seen[issueKey(i)] {
			fresh = append(fresh, i)
		}
	}
	return fresh
}

// commitView accepts next unless it introduces validation issues in viewID
// that prev did not have.
func commitView(prev, next State, viewID string) (State, error) {
	var before []validation.Issue
	if pv, err := prev.View(viewID); err == nil {
		before = validation.ValidateView(prev.Model, pv)
	}
	nv, err := next.View(viewID)
	if err != nil {
		return prev, err
	}
	if fresh := introduced(before, validation.ValidateView(next.Model, nv)); len(fresh) > 0 {
		logging.Logger().Warn("edit rejected", "view", viewID, "issues", len(fresh), "first", fresh[0].Type)
		return prev, &ValidationError{ViewID: viewID, Issues: fresh}
	}
	return next, nil
}

// commitModel is commitView over every view and the model level checks.
func commitModel(prev, next State) (State, error) {
	fresh := introduced(validation.ValidateModel(prev.Model), validation.ValidateModel(next.Model))
	if len(fresh) > 0 {
		logging.Logger().Warn("edit rejected", "issues", len(fresh), "first", fresh[0].Type)
		return prev, &ValidationError{Issues: fresh}
	}
	return next, nil
}
