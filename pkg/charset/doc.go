// Package charset encodes flat text files for the tools that consume them and
// decodes files coming back.
//
// Supported output charsets are UTF-8, UTF-16LE (written with a byte-order
// mark), Mac Roman and Windows-1252. The two legacy 8-bit charsets follow a
// fixed fallback policy per code point:
//
//   - below 0x80: written as is
//   - present in the charset table: the table byte
//   - in 0xA0..0xFF but absent from the table: the low byte
//   - anything else: '?'
//
// Decode detects the charset of an input file: a UTF-16 or UTF-8 byte-order
// mark wins, then a BOM-less UTF-16LE heuristic, then valid UTF-8, and
// finally the caller's legacy fallback.
package charset
