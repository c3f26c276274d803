package handler

import (
	"net/http"

	"github.com/oklog/ulid/v2"
)

// ErrorRecord is the canonical form of one handled error. It is built fresh
// for each request and owned by the handling call.
type ErrorRecord struct {
	// ID is a sortable reference shown on error pages and in logs.
	ID       string
	Err      error
	Status   int
	Message  string
	Headers  http.Header
	Category Category
	Format   Format

	HeaderSent  bool
	NoTranslate bool
	IsCodeBug   bool

	// plain is set once Message has been reduced to text for an API client.
	plain bool
}

func newRecord(err error) *ErrorRecord {
	return &ErrorRecord{
		ID:          ulid.Make().String(),
		Err:         err,
		Status:      http.StatusInternalServerError,
		Message:     err.Error(),
		Headers:     make(http.Header),
		NoTranslate: IsNoTranslate(err),
	}
}
