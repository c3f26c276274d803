package handler

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page for
// DataStar requests. Plain requests ignore it.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the component patches.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the target.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component of a TemplMulti response.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
	// full replaces the patches for plain requests when set.
	full templ.Component
}

// Render streams the patches over SSE for DataStar requests. Plain
// requests get HTML rendered into a buffer first, so a failing component
// leaves the response untouched for the error handler.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	var buf bytes.Buffer
	if t.full != nil {
		if err := t.full.Render(r.Context(), &buf); err != nil {
			return err
		}
	} else {
		for _, p := range t.patches {
			if err := p.Component.Render(r.Context(), &buf); err != nil {
				return err
			}
		}
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(t.status)
	_, err := w.Write(buf.Bytes())
	return err
}

// Templ renders a component as a page, or as a single patch for DataStar.
//
//	return handler.Templ(views.TodoItem(todo),
//		handler.WithTarget("#todo-list"),
//		handler.WithPatchMode(handler.PatchAppend),
//	)
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: http.StatusOK, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplWithStatus is Templ with a custom status for plain requests.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplPartial sends partial to DataStar clients and full to everyone else.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{
		status:  http.StatusOK,
		patches: []TemplPatch{Patch(partial, opts...)},
		full:    full,
	}
}

// TemplMulti sends one SSE patch per component to DataStar clients and the
// concatenated components to everyone else.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{status: http.StatusOK, patches: patches}
}
