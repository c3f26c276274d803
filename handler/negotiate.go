package handler

import (
	"net/http"
	"strings"

	"github.com/kevinpollet/nego"
)

// Format is the negotiated representation of an error response.
type Format string

const (
	// FormatNone means the Accept header matched none of the offers.
	FormatNone     Format = ""
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatDataStar Format = "datastar"
)

const (
	mimeText = "text/plain"
	mimeJSON = "application/json"
	mimeHTML = "text/html"
)

// Negotiate picks text, json or html from the request's Accept header.
// A request without an Accept header gets text.
func Negotiate(r *http.Request) Format {
	if strings.TrimSpace(r.Header.Get("Accept")) == "" {
		return FormatText
	}
	switch nego.NegotiateContentType(r, mimeText, mimeJSON, mimeHTML) {
	case mimeText:
		return FormatText
	case mimeJSON:
		return FormatJSON
	case mimeHTML:
		return FormatHTML
	}
	return FormatNone
}
