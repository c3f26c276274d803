package handler

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/dmitrymomot/httperr/pkg/htmltext"
	"github.com/dmitrymomot/httperr/pkg/humanize"
	"github.com/dmitrymomot/httperr/pkg/retrycodes"
	"github.com/dmitrymomot/httperr/pkg/statuses"
)

// Normalize maps err to an ErrorRecord without touching the response.
// It returns nil for a nil error.
//
// Rules, first match wins:
//  1. an unsatisfiable Accept header gives 406
//  2. a message that is only a 4xx/5xx code gives that status
//  3. Redis failures give 408, credential failures 400 or 429, validation
//     errors 400, database connectivity failures 408
//  4. in hardened environments, runtime and parse errors become an opaque 500
//  5. a status carried by the error, then retryable network codes
//  6. otherwise 500
func (e *Engine) Normalize(r *http.Request, err error) *ErrorRecord {
	if err == nil {
		return nil
	}

	rec := newRecord(err)
	collectHeaders(rec.Headers, err)
	t := e.translateFunc(r, rec)

	rec.Format = e.format(r)
	if rec.Format == FormatNone {
		rec.Status = http.StatusNotAcceptable
		rec.Message = t(MessageNotAcceptable)
		return rec
	}

	rec.Category = Classify(err)
	switch rec.Category {
	case CategoryBareStatus:
		rec.Status = bareStatus(rec.Message)
		rec.Message = t(statuses.Message(rec.Status))
		return rec
	case CategoryTransport, CategoryDataLayer:
		rec.Status = http.StatusRequestTimeout
		rec.Message = t(MessageClientTimeout)
		return rec
	case CategoryAuth:
		status, message, _ := authStatus(err)
		rec.Status = status
		rec.Message = t(message)
		return rec
	case CategoryValidation:
		var verr *ValidationError
		errors.As(err, &verr)
		e.translateValidation(r, rec, verr, t)
		return rec
	case CategoryCodeBug:
		if e.hardened(r) {
			rec.IsCodeBug = true
			rec.Message = t(MessageInternalServerError)
			return rec
		}
	}

	if status, ok := upstreamStatus(err); ok {
		rec.Status = status
		if httpErr, ok := asHTTPError(err); ok && httpErr.Code == status {
			rec.Message = t(httpErr.Error())
		}
		return rec
	}
	if _, status, ok := retrycodes.StatusOf(err); ok {
		rec.Status = status
		rec.Message = t(MessageClientTimeout)
		return rec
	}

	rec.Status = http.StatusInternalServerError
	return rec
}

// format is the representation the response will use.
func (e *Engine) format(r *http.Request) Format {
	if e.toast != nil && IsDataStar(r) {
		return FormatDataStar
	}
	return Negotiate(r)
}

// collectHeaders merges headers from every HTTPError in the error tree,
// walked depth-first like errors.As. Earlier errors win.
func collectHeaders(dst http.Header, err error) {
	var headers http.Header
	switch e := err.(type) {
	case nil:
		return
	case HTTPError:
		headers = e.Headers
	case *HTTPError:
		if e == nil {
			return
		}
		headers = e.Headers
	}
	for k, vs := range headers {
		if _, exists := dst[k]; !exists {
			dst[k] = append([]string(nil), vs...)
		}
	}

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		collectHeaders(dst, u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			collectHeaders(dst, inner)
		}
	}
}

// asHTTPError finds the first HTTPError in the tree, by value or pointer.
func asHTTPError(err error) (HTTPError, bool) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	var ptr *HTTPError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return HTTPError{}, false
}

// translateValidation humanizes each field failure. One failure becomes the
// message; several become a list.
func (e *Engine) translateValidation(r *http.Request, rec *ErrorRecord, verr *ValidationError, t func(string) string) {
	rec.Status = http.StatusBadRequest

	fields := verr.Fields()
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, t(humanize.Sentence(f.message(), f.Path)))
	}

	switch len(messages) {
	case 0:
		rec.Message = t(verr.Error())
	case 1:
		rec.Message = messages[0]
	default:
		var b strings.Builder
		b.WriteString(`<ul class="text-left mb-0">`)
		for _, m := range messages {
			b.WriteString("<li>")
			b.WriteString(html.EscapeString(m))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		rec.Message = e.apiFriendly(r, b.String())
		rec.plain = IsAPI(r.Context())
	}
}

// apiFriendly strips markup for API clients and leaves HTML for browsers.
func (e *Engine) apiFriendly(r *http.Request, message string) string {
	if !IsAPI(r.Context()) {
		return message
	}
	return htmltext.FromString(message, htmltext.Options{LinkBaseURL: e.cfg.BaseURL})
}
