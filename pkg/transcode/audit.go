package transcode

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/locale"
)

// DuplicateMarker is the base name given to duplicate language keys.
const DuplicateMarker = "key-old"

// markers yields key-old, key-old-2, key-old-3... skipping names in use.
type markers struct {
	used map[string]bool
	n    int
}

func (m *markers) next() string {
	for {
		m.n++
		name := DuplicateMarker
		if m.n > 1 {
			name = fmt.Sprintf("%s-%d", DuplicateMarker, m.n)
		}
		if !m.used[name] {
			m.used[name] = true
			return name
		}
	}
}

// auditKeys renames duplicate language keys in place and returns the
// aggregate warning, or "" when the table is clean.
//
// A data row repeating a language already seen gets a marker as its key.
// A data column holding a cell equal to one of the table's language codes
// gets a marker as its header.
func auditKeys(rows [][]string, langCol int, hasCode bool, cols columns, sink changelog.Sink) string {
	mk := &markers{used: make(map[string]bool)}
	for _, row := range rows {
		for _, v := range row {
			mk.used[strings.TrimSpace(v)] = true
		}
	}

	codes := make(map[string]bool)
	duplicates := 0
	for i := 1; i < len(rows); i++ {
		key := strings.TrimSpace(rows[i][langCol])
		if !locale.IsLanguageCode(key) {
			continue
		}
		lang := rowLanguage(key)
		if !codes[lang] {
			codes[lang] = true
			continue
		}
		marker := mk.next()
		rows[i][langCol] = marker
		changelog.Error(changelog.At(sink, cols.ref(i, langCol)), key, marker)
		duplicates++
	}

	collisions := 0
	for j := range rows[0] {
		if j == langCol || (hasCode && j == 0) {
			continue
		}
		for i := 1; i < len(rows); i++ {
			v := strings.TrimSpace(rows[i][j])
			if !locale.IsLanguageCode(v) || !codes[rowLanguage(v)] {
				continue
			}
			marker := mk.next()
			header := rows[0][j]
			rows[0][j] = marker
			changelog.Error(changelog.At(sink, cols.ref(i, j)), header, marker)
			collisions++
			break
		}
	}

	if duplicates == 0 && collisions == 0 {
		return ""
	}
	return fmt.Sprintf("Duplicate language keys: %d row(s) and %d column(s) renamed to %s markers", duplicates, collisions, DuplicateMarker)
}
