package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/httperr/pkg/logger"
	"github.com/dmitrymomot/httperr/pkg/requestid"
	"github.com/dmitrymomot/httperr/pkg/session"
	"github.com/dmitrymomot/httperr/pkg/statuses"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Payload is the JSON body of an error response.
type Payload struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Render writes rec to w. It writes at most once: if the response has
// already started, or the client went away, it only sets rec.HeaderSent.
// A panic while rendering becomes a plain 500.
func (e *Engine) Render(w http.ResponseWriter, r *http.Request, rec *ErrorRecord) {
	if rec == nil {
		return
	}
	if headersSent(w) || errors.Is(r.Context().Err(), context.Canceled) {
		rec.HeaderSent = true
		return
	}

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		e.logger.ErrorContext(r.Context(), "error rendering panicked",
			slog.Any("panic", v),
			logger.ErrorID(rec.ID),
			logger.Event("render_error"),
			logger.Component("error_handler"),
		)
		if headersSent(w) {
			rec.HeaderSent = true
			return
		}
		rec.Status = http.StatusInternalServerError
		finalize(w, http.StatusInternalServerError, contentTypeText, []byte(MessageInternalServerError))
	}()

	payload := e.payload(r, rec)
	for k, vs := range rec.Headers {
		w.Header()[k] = append([]string(nil), vs...)
	}

	switch rec.Format {
	case FormatDataStar:
		e.renderToast(w, r, rec, payload)
	case FormatHTML:
		e.renderHTML(w, r, rec, payload)
	case FormatJSON:
		finalize(w, rec.Status, contentTypeJSON, encodePayload(payload))
	default:
		contentType := contentTypeText
		if IsAPI(r.Context()) {
			contentType = contentTypeJSON
		}
		finalize(w, rec.Status, contentType, encodePayload(payload))
	}
}

func (e *Engine) payload(r *http.Request, rec *ErrorRecord) Payload {
	title := statuses.Message(rec.Status)
	message := rec.Message
	if message == "" {
		message = title
	}
	if rec.Status == http.StatusInternalServerError && !e.cfg.Debug {
		message = e.translateFunc(r, rec)(MessageMasked)
	}
	if !rec.plain {
		message = e.apiFriendly(r, message)
	}
	return Payload{
		StatusCode: rec.Status,
		Error:      title,
		Message:    message,
	}
}

func encodePayload(p Payload) []byte {
	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		// Payload only holds strings and an int.
		panic(err)
	}
	return body
}

func (e *Engine) renderHTML(w http.ResponseWriter, r *http.Request, rec *ErrorRecord, p Payload) {
	t := e.translateFunc(r, rec)
	params := ErrorPageParams{
		Title:       t(p.Error),
		Description: p.Message,
		StatusCode:  rec.Status,
		RequestID:   requestid.FromContext(r.Context()),
		ErrorID:     rec.ID,
		RetryURL:    r.URL.RequestURI(),
	}

	if rec.Status == http.StatusNotFound {
		e.writePage(w, r, rec, PageNotFound, params)
		return
	}

	// Without a referrer there is nowhere to go back to; redirecting would loop.
	referrer := r.Referer()
	if rec.Status >= http.StatusInternalServerError || referrer == "" {
		e.flash(w, r, p.Message)
		e.writePage(w, r, rec, PageServerError, params)
		return
	}

	e.flash(w, r, p.Message)
	if e.saver != nil {
		if err := e.saver.Save(w, r); err != nil {
			if errors.Is(err, session.ErrHeadersSent) {
				rec.HeaderSent = true
				return
			}
			e.logger.WarnContext(r.Context(), "failed to save session before redirect",
				logger.Error(err),
				logger.ErrorID(rec.ID),
				logger.Component("error_handler"),
			)
		}
	}

	target := e.redirectTarget(r, referrer)
	escaped := html.EscapeString(target)
	w.Header().Set("Location", target)
	finalize(w, http.StatusSeeOther, contentTypeHTML,
		[]byte(fmt.Sprintf(`Redirecting to <a href="%s">%s</a>.`, escaped, escaped)))
}

func (e *Engine) flash(w http.ResponseWriter, r *http.Request, message string) {
	if e.flasher == nil {
		return
	}
	if err := e.flasher.Flash(w, r, "error", message); err != nil {
		e.logger.DebugContext(r.Context(), "flash message dropped",
			logger.Error(err),
			logger.Component("error_handler"),
		)
	}
}

// writePage renders name into a buffer and falls back to the built-in page
// when rendering is unavailable or fails.
func (e *Engine) writePage(w http.ResponseWriter, r *http.Request, rec *ErrorRecord, name string, params ErrorPageParams) {
	if e.pages != nil {
		var buf bytes.Buffer
		err := e.pages.RenderPage(r.Context(), &buf, name, params)
		if err == nil {
			finalize(w, rec.Status, contentTypeHTML, buf.Bytes())
			return
		}
		if !errors.Is(err, ErrPageNotFound) {
			e.logger.ErrorContext(r.Context(), "failed to render error page",
				logger.Error(err),
				logger.ErrorID(rec.ID),
				logger.Event("render_error_page"),
				logger.Component("error_handler"),
			)
		}
	}
	finalize(w, rec.Status, contentTypeHTML, fallbackPage(name))
}

// redirectTarget allows relative referrers and absolute ones on the same host.
func (e *Engine) redirectTarget(r *http.Request, referrer string) string {
	u, err := url.Parse(referrer)
	if err != nil {
		return e.cfg.RedirectFallback
	}
	if u.IsAbs() || u.Host != "" {
		if (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "") && strings.EqualFold(u.Host, r.Host) {
			return referrer
		}
		return e.cfg.RedirectFallback
	}
	if strings.HasPrefix(referrer, "/") && !strings.HasPrefix(referrer, "//") {
		return referrer
	}
	return e.cfg.RedirectFallback
}

func (e *Engine) renderToast(w http.ResponseWriter, r *http.Request, rec *ErrorRecord, p Payload) {
	component := e.toast(ErrorToastParams{
		Message:   p.Message,
		Type:      toastType(rec.Status),
		RequestID: requestid.FromContext(r.Context()),
		ErrorID:   rec.ID,
	})

	sse := datastar.NewSSE(w, r)
	err := sse.PatchElementTempl(component,
		datastar.WithSelector(e.cfg.ToastTarget),
		datastar.WithMode(e.toastMode),
	)
	if err != nil {
		e.logger.ErrorContext(r.Context(), "failed to render error toast",
			logger.Error(err),
			logger.ErrorID(rec.ID),
			logger.Event("render_error_toast"),
			logger.Component("error_handler"),
		)
	}
}

// finalize is the single write of an error response.
func finalize(w http.ResponseWriter, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
