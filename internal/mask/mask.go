package mask

import (
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/bimmerbailey/sanictl/internal/config"
	"github.com/bimmerbailey/sanictl/internal/detect"
)

// RehydrationEntry records one placeholder's provenance (spec §3).
type RehydrationEntry struct {
	Placeholder  string
	OriginalText string
	Label        string
	Ordinal      int
}

// RehydrationMap is an insertion-ordered association of RehydrationEntry
// keyed by placeholder. Insertion order equals first-appearance order of
// each distinct (label, original) pair (spec §3, §8 property 9).
type RehydrationMap struct {
	entries *orderedmap.OrderedMap[string, RehydrationEntry]
}

func newRehydrationMap() *RehydrationMap {
	return &RehydrationMap{entries: orderedmap.New[string, RehydrationEntry]()}
}

// FromEntries rebuilds a RehydrationMap from a previously serialized entry
// list (e.g. one read back from a session store), preserving order.
func FromEntries(entries []RehydrationEntry) *RehydrationMap {
	m := newRehydrationMap()
	for _, e := range entries {
		m.put(e)
	}
	return m
}

// Get looks up a placeholder's entry.
func (m *RehydrationMap) Get(placeholder string) (RehydrationEntry, bool) {
	return m.entries.Get(placeholder)
}

// Len returns the number of distinct placeholders in the map.
func (m *RehydrationMap) Len() int {
	return m.entries.Len()
}

// Entries returns every entry in insertion order, suitable for stable
// serialization (spec §6, "RehydrationMap serialization").
func (m *RehydrationMap) Entries() []RehydrationEntry {
	out := make([]RehydrationEntry, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// AsDocument renders the map as a stable placeholder->original key/value
// document (spec §6).
func (m *RehydrationMap) AsDocument() map[string]string {
	doc := make(map[string]string, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		doc[pair.Key] = pair.Value.OriginalText
	}
	return doc
}

func (m *RehydrationMap) put(entry RehydrationEntry) {
	m.entries.Set(entry.Placeholder, entry)
}

// pairKey identifies a distinct (label, original text) value within a call.
type pairKey struct {
	label string
	text  string
}

// CallMasker derives placeholders and rewrites fragment text for a single
// sanitize call. It is not safe for concurrent use — one call owns one
// CallMasker (spec §5: "each sanitize call owns its own mutable... map
// state").
type CallMasker struct {
	cfg      config.Config
	digests  *digestTable
	ordinals map[string]int // label -> next ordinal to assign
	byPair   map[pairKey]string
	rehyd    *RehydrationMap
}

// NewCall constructs a masker for one sanitize call.
func NewCall(cfg config.Config) *CallMasker {
	return &CallMasker{
		cfg:      cfg,
		digests:  newDigestTable(),
		ordinals: make(map[string]int),
		byPair:   make(map[pairKey]string),
		rehyd:    newRehydrationMap(),
	}
}

// Map returns the RehydrationMap accumulated so far.
func (c *CallMasker) Map() *RehydrationMap {
	return c.rehyd
}

// MaskFragment rewrites text by substituting each span with its
// placeholder, assigning new placeholders (and recording new map entries)
// for any (label, text) pair not already seen in this call. spans must be
// non-overlapping; they are assumed to be in ascending start order, which
// is also the order used to assign first-appearance ordinals (spec §5).
func (c *CallMasker) MaskFragment(text string, spans []detect.Span) (string, error) {
	placeholders := make([]string, len(spans))
	for i, span := range spans {
		placeholders[i] = c.placeholderFor(span.Label, span.Text)
	}

	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return spans[order[a]].Start > spans[order[b]].Start
	})

	out := text
	for _, i := range order {
		span := spans[i]
		if span.Start < 0 || span.End > len(out) || span.Start > span.End {
			return "", fmt.Errorf("mask: span %+v out of bounds for fragment of length %d", span, len(out))
		}
		out = out[:span.Start] + placeholders[i] + out[span.End:]
	}
	return out, nil
}

// placeholderFor returns the placeholder for (label, text), minting one and
// recording a RehydrationEntry the first time this pair is seen in the
// call.
func (c *CallMasker) placeholderFor(label, text string) string {
	key := pairKey{label: label, text: text}
	if existing, ok := c.byPair[key]; ok {
		return existing
	}

	ordinal := c.ordinals[label] + 1
	c.ordinals[label] = ordinal

	digest := c.digests.assign(label+"\x00"+text, fullDigest(label, text))
	placeholder := c.cfg.PlaceholderPre + label + "_" + digest + "_" + strconv.Itoa(ordinal) + c.cfg.PlaceholderSuf

	c.byPair[key] = placeholder
	c.rehyd.put(RehydrationEntry{
		Placeholder:  placeholder,
		OriginalText: text,
		Label:        label,
		Ordinal:      ordinal,
	})
	return placeholder
}
