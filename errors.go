package nbspace

import (
	"errors"
	"fmt"
)

var (
	ErrNoFiles     = errors.New("nbspace: no files selected")
	ErrUnsupported = errors.New("nbspace: unsupported file type")
)

// FileError is a failure of one file in a batch.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
