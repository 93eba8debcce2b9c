package cart

import "fmt"

// Status tells what a mutation actually did.
type Status int

const (
	Added Status = iota
	Incremented
	Updated
	Clamped
	Removed
	Cleared
	NotFound
	Rejected
)

var statusNames = map[Status]string{
	Added:       "added",
	Incremented: "incremented",
	Updated:     "updated",
	Clamped:     "clamped",
	Removed:     "removed",
	Cleared:     "cleared",
	NotFound:    "not_found",
	Rejected:    "rejected",
}

func (s Status) String() string {
	if name, exists := statusNames[s]; exists {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result of a store operation. Item is the affected line after the
// operation (or the removed line), Previous its quantity before.
// Err is set for rejected input and for persistence faults; in the
// latter case the in-memory state has still changed.
type Result struct {
	Status   Status   `json:"status"`
	Item     LineItem `json:"item"`
	Previous int      `json:"previous"`
	Err      error    `json:"-"`
}

// Changed reports whether the cart state was modified.
func (r Result) Changed() bool {
	return r.Status != NotFound && r.Status != Rejected
}

// PersistenceError wraps a failed read or write of the durable slot.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cart storage %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
