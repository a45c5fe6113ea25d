package format

// LocatorKind tags which parser variant produced a Locator, and therefore
// how Reconstruct must interpret it.
type LocatorKind int

const (
	LocatorWhole LocatorKind = iota
	LocatorPath
	LocatorByteRange
)

// PathStep is one hop in a structured-tree locator: either a map key or a
// slice index.
type PathStep struct {
	Key     string
	Index   int
	IsIndex bool
}

// Locator is opaque to detection and masking; only the owning parser's
// Reconstruct interprets it (spec §3).
type Locator struct {
	Kind LocatorKind

	// Path is populated for LocatorPath: the sequence of keys/indices from
	// the tree root to this leaf.
	Path []PathStep

	// Start/End are populated for LocatorByteRange: a byte offset range
	// into the original markup input.
	Start int
	End   int
}

// Fragment is a unit of maskable text extracted by a parser, together with
// enough information to re-insert a replacement in its place (spec §3).
type Fragment struct {
	Text    string
	Locator Locator
}
