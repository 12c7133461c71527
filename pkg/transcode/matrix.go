package transcode

import "slices"

// Matrix is a grid of cell values. Rows may differ in length.
type Matrix [][]string

// Width returns the length of the longest row.
func (m Matrix) Width() int {
	w := 0
	for _, row := range m {
		w = max(w, len(row))
	}
	return w
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

// Transpose swaps rows and columns. Missing trailing cells of a jagged
// matrix become empty strings.
func Transpose(m Matrix) Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	cols := m.Width()
	out := make(Matrix, cols)
	for c := range cols {
		out[c] = make([]string, len(m))
		for r, row := range m {
			if c < len(row) {
				out[c][r] = row[c]
			}
		}
	}
	return out
}

// InsertColumn returns a new row with value inserted at index.
// An index past the end appends.
func InsertColumn(row []string, index int, value string) []string {
	index = min(max(index, 0), len(row))
	out := make([]string, 0, len(row)+1)
	out = append(out, row[:index]...)
	out = append(out, value)
	return append(out, row[index:]...)
}

// RemoveColumn returns a new row without the cell at index.
// An index out of range returns an unchanged copy.
func RemoveColumn(row []string, index int) []string {
	if index < 0 || index >= len(row) {
		return slices.Clone(row)
	}
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:index]...)
	return append(out, row[index+1:]...)
}

func mapRows(m Matrix, fn func(i int, row []string) []string) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = fn(i, row)
	}
	return out
}
