package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httperr/pkg/i18n"
)

const catalogYAML = `
en:
  Not Found: Not Found
  errors:
    greeting: "Hello, %{name}!"
de:
  Not Found: Nicht gefunden
  Email is required: E-Mail ist erforderlich
  errors:
    greeting: "Hallo, %{name}!"
`

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	cat, err := i18n.ParseYAML([]byte(catalogYAML))
	require.NoError(t, err)
	tr, err := i18n.New(cat)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, "Nicht gefunden", tr.T("de", "Not Found"))
	assert.Equal(t, "Hallo, Ann!", tr.T("de", "errors.greeting", "name", "Ann"))
	assert.Equal(t, "Hello, %{name}!", tr.T("en", "errors.greeting"))
	assert.Equal(t, "Not Found", tr.T("fr", "Not Found"), "unknown language falls back to default")
	assert.Equal(t, "Something odd", tr.T("de", "Something odd"), "missing key falls back to key")
	assert.Equal(t, "Hi Bob", tr.T("de", "Hi %{who}", "who", "Bob"))
	assert.Equal(t, []string{"en", "de"}, tr.Languages())
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, "de", tr.Match("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, "en", tr.Match("en-US"))
	assert.Equal(t, "en", tr.Match("ja"))
	assert.Equal(t, "en", tr.Match(""))
	assert.Equal(t, "en", tr.Match("not a tag!!"))
}

func TestTranslator_Func(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	translate := tr.Func(i18n.SetLocale(context.Background(), "de"))
	assert.Equal(t, "E-Mail ist erforderlich", translate("Email is required"))

	translate = tr.Func(context.Background())
	assert.Equal(t, "Email is required", translate("Email is required"))
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(nil)
	assert.ErrorIs(t, err, i18n.ErrNoLanguages)
}

func TestParseYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := i18n.ParseYAML([]byte("en: [1, 2]"))
	assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)

	_, err = i18n.ParseYAML([]byte("en: {a: [}"))
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en.yaml":   {Data: []byte("en:\n  Bad Request: Bad Request\n")},
		"locales/de.yml":    {Data: []byte("de:\n  Bad Request: Ungültige Anfrage\n")},
		"locales/README.md": {Data: []byte("ignored")},
	}

	cat, err := i18n.LoadFS(fsys, "locales")
	require.NoError(t, err)
	assert.Equal(t, "Ungültige Anfrage", cat["de"]["Bad Request"])
	assert.Equal(t, "Bad Request", cat["en"]["Bad Request"])
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		want   string
	}{
		{"accept-language", func(r *http.Request) { r.Header.Set("Accept-Language", "de-AT") }, "/", "de"},
		{"query wins", func(r *http.Request) { r.Header.Set("Accept-Language", "de") }, "/?lang=en", "en"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: i18n.LangCookie, Value: "de"}) }, "/", "de"},
		{"default", func(r *http.Request) {}, "/", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			h := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = i18n.GetLocale(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
