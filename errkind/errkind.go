// Package errkind implements the tagged-variant error taxonomy of spec.md
// §7: every error the resolver and classifiers produce collapses to one of
// a fixed set of kinds, carrying a message, a transient flag, and — for RPC
// failures — the list of per-endpoint attempts that led to it.
package errkind

import "fmt"

// Kind is one of the fixed taxonomy values from spec.md §3/§7.
type Kind string

const (
	RPC           Kind = "rpc"
	Contract      Kind = "contract"
	MetadataFetch Kind = "metadata_fetch"
	Parsing       Kind = "parsing"
	ImageFetch    Kind = "image_fetch"
	Unknown       Kind = "unknown"
)

// Attempt records one endpoint's outcome during RPC resolution, per
// spec.md §4.3 step 5 ("a terminal error carries all per-endpoint
// attempts").
type Attempt struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Error is the single error type every component in this module returns.
// Never panics are raised from a classified path — every failure surfaces
// as one of these.
type Error struct {
	Kind      Kind
	Message   string
	Transient bool
	Attempts  []Attempt
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs a classified error with no attempt log.
func New(kind Kind, message string, transient bool) *Error {
	return &Error{Kind: kind, Message: message, Transient: transient}
}

// NewWithAttempts constructs a classified error carrying the per-endpoint
// attempt log the RPC resolver accumulates.
func NewWithAttempts(kind Kind, message string, transient bool, attempts []Attempt) *Error {
	return &Error{Kind: kind, Message: message, Transient: transient, Attempts: attempts}
}

// As extracts an *Error from err, returning (nil, false) if err is not one.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
