package mask

import (
	"sort"
	"strings"
)

// Rehydrate replaces every placeholder in text with its original substring
// per m, longest placeholder first so that no placeholder's fingerprint can
// be mistaken for a substring of another's (spec §4.5). Placeholders absent
// from text, and text absent from m, are both left intact.
func Rehydrate(text string, m *RehydrationMap) string {
	entries := m.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return len(entries[i].Placeholder) > len(entries[j].Placeholder)
	})

	out := text
	for _, e := range entries {
		out = strings.ReplaceAll(out, e.Placeholder, e.OriginalText)
	}
	return out
}
