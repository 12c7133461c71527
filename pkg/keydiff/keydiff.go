// Package keydiff compares the variable keys of two sheets.
//
// Keys come from the first column and values from the second (the reference
// language). The comparison reports four independent partitions: keys only
// in the first sheet, keys only in the second, keys whose values differ, and
// whether the key counts differ. Duplicate keys are reported separately.
package keydiff

import (
	"slices"
	"strings"
)

// Keys is a key to reference-text map read from a sheet.
type Keys struct {
	values     map[string]string
	duplicates []string
}

// FromMatrix reads keys from rows, skipping the header row and rows with an
// empty key. Keys and values are trimmed. A repeated key keeps its last value
// and is listed in Duplicates.
func FromMatrix(rows [][]string) Keys {
	k := Keys{values: make(map[string]string)}
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = strings.TrimSpace(row[1])
		}
		if _, ok := k.values[key]; ok && !slices.Contains(k.duplicates, key) {
			k.duplicates = append(k.duplicates, key)
		}
		k.values[key] = value
	}
	slices.Sort(k.duplicates)
	return k
}

// Len returns the number of distinct keys.
func (k Keys) Len() int { return len(k.values) }

// Get returns the value stored for key.
func (k Keys) Get(key string) (string, bool) {
	v, ok := k.values[key]
	return v, ok
}

// Names returns the keys in sorted order.
func (k Keys) Names() []string {
	names := make([]string, 0, len(k.values))
	for key := range k.values {
		names = append(names, key)
	}
	slices.Sort(names)
	return names
}

// Duplicates returns the keys that appeared more than once, sorted.
func (k Keys) Duplicates() []string { return slices.Clone(k.duplicates) }

// Change is a key present in both sheets with different values.
type Change struct {
	Key    string `json:"key"`
	First  string `json:"first"`
	Second string `json:"second"`
}

// Diff is the result of Compare. All key lists are sorted.
type Diff struct {
	OnlyInFirst      []string `json:"only_in_first"`
	OnlyInSecond     []string `json:"only_in_second"`
	Changed          []Change `json:"changed"`
	FirstCount       int      `json:"first_count"`
	SecondCount      int      `json:"second_count"`
	CountMismatch    bool     `json:"count_mismatch"`
	FirstDuplicates  []string `json:"first_duplicates,omitempty"`
	SecondDuplicates []string `json:"second_duplicates,omitempty"`
}

// Compare computes the differences between first and second.
func Compare(first, second Keys) Diff {
	d := Diff{
		OnlyInFirst:      []string{},
		OnlyInSecond:     []string{},
		Changed:          []Change{},
		FirstCount:       first.Len(),
		SecondCount:      second.Len(),
		CountMismatch:    first.Len() != second.Len(),
		FirstDuplicates:  first.Duplicates(),
		SecondDuplicates: second.Duplicates(),
	}

	for _, key := range first.Names() {
		other, ok := second.Get(key)
		if !ok {
			d.OnlyInFirst = append(d.OnlyInFirst, key)
			continue
		}
		if v, _ := first.Get(key); v != other {
			d.Changed = append(d.Changed, Change{Key: key, First: v, Second: other})
		}
	}
	for _, key := range second.Names() {
		if _, ok := first.Get(key); !ok {
			d.OnlyInSecond = append(d.OnlyInSecond, key)
		}
	}
	return d
}

// Identical reports whether the sheets hold the same keys and values.
func (d Diff) Identical() bool {
	return len(d.OnlyInFirst) == 0 && len(d.OnlyInSecond) == 0 && len(d.Changed) == 0 && !d.CountMismatch
}
