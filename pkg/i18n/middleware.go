package i18n

import "net/http"

const (
	LangParam  = "lang"
	LangCookie = "lang"
)

// Middleware stores the negotiated locale in the request context.
// Explicit choices (query, cookie) take priority over Accept-Language.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prefs := make([]string, 0, 3)
			if q := r.URL.Query().Get(LangParam); q != "" {
				prefs = append(prefs, q)
			}
			if c, err := r.Cookie(LangCookie); err == nil && c.Value != "" {
				prefs = append(prefs, c.Value)
			}
			prefs = append(prefs, r.Header.Get("Accept-Language"))

			lang := t.Match(prefs...)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
