package charset

import "errors"

var (
	// ErrUnsupported is returned for charset names outside the supported set.
	ErrUnsupported = errors.New("charset: unsupported charset")
	// ErrDecode is returned when input bytes cannot be decoded.
	ErrDecode = errors.New("charset: decode failed")
)
