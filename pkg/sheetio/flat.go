package sheetio

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

// ReadFlat decodes a flat text file and splits it into a matrix.
// fallback is the 8-bit charset assumed when detection finds nothing better.
func ReadFlat(data []byte, fallback charset.Charset) (transcode.Matrix, charset.Charset, error) {
	text, cs, err := charset.Decode(data, fallback)
	if err != nil {
		return nil, "", errors.Join(ErrReadFlat, err)
	}
	return transcode.ParseFlat(text), cs, nil
}

// WriteFlat renders m as flat text encoded in cs.
func WriteFlat(m transcode.Matrix, cs charset.Charset) ([]byte, error) {
	return charset.Encode(transcode.FormatFlat(m), cs)
}

// Output extensions.
const (
	SheetExt = ".xlsx"
	FlatExt  = ".txt"
)

// FlatName returns the output file name for a converted sheet:
// "menu [A1].xlsx" becomes "menu [A1].txt".
func FlatName(sheetFile string) string {
	return swapExt(sheetFile, SheetExt, FlatExt)
}

// SheetFileName returns the output file name for a converted flat file.
func SheetFileName(flatFile string) string {
	return swapExt(flatFile, FlatExt, SheetExt)
}

func swapExt(name, from, to string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); strings.EqualFold(ext, from) {
		base = base[:len(base)-len(ext)]
	}
	return base + to
}
