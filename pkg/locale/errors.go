package locale

import "errors"

var (
	// ErrUnknownLanguage is returned when a code is not in the recognized set.
	ErrUnknownLanguage = errors.New("locale: unknown language code")
)
