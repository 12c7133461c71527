package charset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Charset names a text encoding.
type Charset string

const (
	UTF8        Charset = "utf-8"
	UTF16LE     Charset = "utf-16le"
	UTF16BE     Charset = "utf-16be" // decode only
	MacRoman    Charset = "macintosh"
	Windows1252 Charset = "windows-1252"
)

var aliases = map[string]Charset{
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"utf-16le":     UTF16LE,
	"utf16le":      UTF16LE,
	"utf-16":       UTF16LE,
	"utf16":        UTF16LE,
	"macintosh":    MacRoman,
	"mac":          MacRoman,
	"macroman":     MacRoman,
	"mac-roman":    MacRoman,
	"x-mac-roman":  MacRoman,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
	"win1252":      Windows1252,
}

// Parse resolves a charset name or alias, case-insensitively.
// Only output charsets are accepted.
func Parse(name string) (Charset, error) {
	cs, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return cs, nil
}

// IsLegacy reports whether cs is an 8-bit charset.
func (cs Charset) IsLegacy() bool {
	return cs == MacRoman || cs == Windows1252
}

func (cs Charset) table() *charmap.Charmap {
	switch cs {
	case MacRoman:
		return charmap.Macintosh
	case Windows1252:
		return charmap.Windows1252
	}
	return nil
}

// encodeRune applies the legacy fallback policy. ok is false when the code
// point has no faithful representation, even if a fallback byte was produced.
func encodeRune(cm *charmap.Charmap, r rune) (b byte, ok bool) {
	switch {
	case r < 0x80:
		return byte(r), true
	case r < 0xA0:
		// C1 controls; the tables map them to themselves.
		return '?', false
	}
	if b, ok := cm.EncodeRune(r); ok {
		return b, true
	}
	if r <= 0xFF {
		return byte(r), false
	}
	return '?', false
}

// CanEncode reports whether r survives encoding to cs unchanged.
func CanEncode(r rune, cs Charset) bool {
	cm := cs.table()
	if cm == nil {
		return cs == UTF8 || cs == UTF16LE
	}
	_, ok := encodeRune(cm, r)
	return ok
}

// Unrepresentable returns the distinct code points of text that cs cannot
// carry, in order of first appearance.
func Unrepresentable(text string, cs Charset) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] || CanEncode(r, cs) {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// Encode converts text to cs. UTF-16LE output starts with a byte-order mark.
func Encode(text string, cs Charset) ([]byte, error) {
	switch cs {
	case UTF8:
		return []byte(text), nil
	case UTF16LE:
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		out, err := enc.Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("charset: encode utf-16le: %w", err)
		}
		return out, nil
	}

	cm := cs.table()
	if cm == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cs)
	}

	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, _ := encodeRune(cm, r)
		out = append(out, b)
	}
	return out, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sampleSize bounds the prefix inspected by the UTF-16LE heuristic.
const sampleSize = 512

// Detect guesses the charset of data, returning fallback when nothing else fits.
// Data that is valid UTF-8 is reported as UTF8 even when it was written in a
// legacy charset whose bytes happen to form valid sequences ("Ã©").
func Detect(data []byte, fallback Charset) Charset {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	case looksUTF16LE(data):
		return UTF16LE
	case utf8.Valid(data):
		return UTF8
	}
	return fallback
}

// looksUTF16LE reports whether most odd-position bytes of the sample are zero,
// which is how Latin text looks in little-endian UTF-16.
func looksUTF16LE(data []byte) bool {
	sample := data[:min(len(data), sampleSize)]
	odd := len(sample) / 2
	if odd < 2 {
		return false
	}
	zeros := 0
	for i := 1; i < len(sample); i += 2 {
		if sample[i] == 0 {
			zeros++
		}
	}
	return zeros*2 > odd
}

// Decode detects the charset of data and returns its text without any
// byte-order mark. fallback must be a legacy charset.
func Decode(data []byte, fallback Charset) (string, Charset, error) {
	if !fallback.IsLegacy() {
		return "", "", fmt.Errorf("%w: fallback %q is not an 8-bit charset", ErrUnsupported, fallback)
	}

	cs := Detect(data, fallback)
	switch cs {
	case UTF8:
		return string(bytes.TrimPrefix(data, bomUTF8)), cs, nil
	case UTF16LE, UTF16BE:
		order := unicode.LittleEndian
		if cs == UTF16BE {
			order = unicode.BigEndian
		}
		dec := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder()
		if !bytes.HasPrefix(data, bomUTF16LE) && !bytes.HasPrefix(data, bomUTF16BE) {
			dec = unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder()
		}
		out, err := dec.Bytes(data)
		if err != nil {
			return "", cs, fmt.Errorf("%w: %s: %v", ErrDecode, cs, err)
		}
		return string(out), cs, nil
	}

	out, err := cs.table().NewDecoder().Bytes(data)
	if err != nil {
		return "", cs, fmt.Errorf("%w: %s: %v", ErrDecode, cs, err)
	}
	return string(out), cs, nil
}
