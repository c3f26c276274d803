// Package i18n translates user-facing messages.
//
// Catalogs are YAML documents keyed by language at the top level; nested
// keys are flattened with dots:
//
//	en:
//	  Not Found: Not Found
//	  errors:
//	    rate_limited: "Slow down, %{name}"
//	de:
//	  Not Found: Nicht gefunden
//
// Keys are usually the English message itself, so a missing translation
// falls back to the key with %{name} placeholders still substituted.
//
// Middleware picks the request locale from a "lang" query parameter, a
// "lang" cookie or Accept-Language (matched with golang.org/x/text/language)
// and stores it in the context where Translator.Func reads it.
package i18n
