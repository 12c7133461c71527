package memo

import "errors"

var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("memo: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("memo: closed")

	// ErrMarshal is returned when a result cannot be serialized.
	ErrMarshal = errors.New("memo: failed to marshal result")

	// ErrUnmarshal is returned when a stored result cannot be decoded.
	ErrUnmarshal = errors.New("memo: failed to unmarshal result")

	// ErrInvalidRedisURL is returned for empty or non-redis URLs.
	ErrInvalidRedisURL = errors.New("memo: invalid redis url")

	// ErrConnectionFailed is returned when Redis cannot be reached after retries.
	ErrConnectionFailed = errors.New("memo: redis connection failed")
)
