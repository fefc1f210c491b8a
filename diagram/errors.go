package diagram

// NotFoundError is returned by every lookup by id that fails.
//
// Kind names the collection searched ("ModelItem", "ViewItem", "Connector",
// ...) and ID the id that was not present. Callers recognise it with
// errors.As.
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
//
// The message format is stable:
//
//	"isoedit: {Kind} not found: {ID}"
func (e *NotFoundError) Error() string {
	return "isoedit: " + e.Kind + " not found: " + e.ID
}
