package transcode

import "errors"

var (
	// ErrEmptyMatrix is returned when the input has no rows.
	ErrEmptyMatrix = errors.New("transcode: empty matrix")
)
