package i18n

import "errors"

var (
	ErrFailedToParseYAML = errors.New("i18n: failed to parse yaml catalog")
	ErrInvalidCatalog    = errors.New("i18n: invalid catalog")
	ErrNoLanguages       = errors.New("i18n: no languages loaded")
)
