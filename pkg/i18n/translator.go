package i18n

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sort"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

// Translator looks messages up in a Catalog. It is read-only after New and
// safe for concurrent use.
type Translator struct {
	catalog     Catalog
	defaultLang string
	langs       []string
	matcher     language.Matcher
	logMissing  bool
	logger      *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) { t.defaultLang = lang }
}

// WithMissingKeyLog logs a warning for every lookup that falls back to the key.
func WithMissingKeyLog(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
			t.logMissing = true
		}
	}
}

// New builds a Translator. The default language is listed first for
// Accept-Language matching even when the catalog has no entry for it.
func New(cat Catalog, opts ...Option) (*Translator, error) {
	if len(cat) == 0 {
		return nil, ErrNoLanguages
	}

	t := &Translator{
		catalog:     cat,
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.langs = []string{t.defaultLang}
	for lang := range cat {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}
	sort.Strings(t.langs[1:])

	tags := make([]language.Tag, 0, len(t.langs))
	for _, l := range t.langs {
		tags = append(tags, language.Make(l))
	}
	t.matcher = language.NewMatcher(tags)

	return t, nil
}

// Languages lists supported languages, default first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.langs...)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// T translates key into lang. Args are name/value pairs substituted into
// %{name} placeholders; unknown placeholders are left intact.
func (t *Translator) T(lang, key string, args ...string) string {
	msg, ok := t.catalog[lang][key]
	if !ok && lang != t.defaultLang {
		msg, ok = t.catalog[t.defaultLang][key]
	}
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		msg = key
	}
	if len(args) < 2 {
		return msg
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(msg, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Match returns the best supported language for the given preferences,
// which may be Accept-Language values or plain tags.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.defaultLang
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Func returns a context-bound translation function using the locale
// stored by Middleware or SetLocale.
func (t *Translator) Func(ctx context.Context) func(string) string {
	lang := LocaleFromContext(ctx, t.defaultLang)
	return func(msg string) string {
		return t.T(lang, msg)
	}
}
