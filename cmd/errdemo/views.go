package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/httperr/handler"
)

// errorPage is shared by the "404" and "500" pages.
func errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%[1]s</title></head>
<body>
  <h1>%[2]d %[1]s</h1>
  <div>%[3]s</div>
  <p><a href="%[4]s">Try again</a></p>
  <small>request %[5]s, reference %[6]s</small>
</body>
</html>`,
			templ.EscapeString(p.Title),
			p.StatusCode,
			p.Description,
			templ.EscapeString(p.RetryURL),
			templ.EscapeString(p.RequestID),
			templ.EscapeString(p.ErrorID),
		)
		return err
	})
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast toast-%s" role="alert">%s</div>`,
			templ.EscapeString(p.Type), templ.EscapeString(p.Message))
		return err
	})
}
