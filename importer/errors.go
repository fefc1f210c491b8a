package importer

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Issue is one reason a load was rejected. Path points at the offending
// field, for example "views[0].connectors[2].anchors[1].ref".
type Issue struct {
	Path    string
	Message string
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// LoadError lists every issue that rejected a load.
type LoadError struct {
	Issues []Issue
	err    error
}

func newLoadError(issues []Issue) *LoadError {
	var err error
	for _, issue := range issues {
		err = multierr.Append(err, issue)
	}
	return &LoadError{Issues: issues, err: err}
}

func (e *LoadError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return fmt.Sprintf("invalid model (%d issue(s)): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Errors returns the issues as individual errors, so multierr.Errors can
// split a LoadError.
func (e *LoadError) Errors() []error {
	return multierr.Errors(e.err)
}

func (e *LoadError) Unwrap() error {
	return e.err
}
