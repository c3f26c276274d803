package i18n

import "context"

type localeContextKey struct{}

func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from ctx or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	return LocaleFromContext(ctx, DefaultLanguage)
}

// LocaleFromContext returns the locale from ctx or fallback.
func LocaleFromContext(ctx context.Context, fallback string) string {
	if ctx == nil {
		return fallback
	}
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return fallback
}
