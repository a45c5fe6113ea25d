package format

import (
	"strings"

	"github.com/bimmerbailey/sanictl/internal/config"
)

// Kind identifies one of the three closed parser variants (spec §9:
// "tagged variants rather than open inheritance").
type Kind int

const (
	KindPlain Kind = iota
	KindStructured
	KindMarkup
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindMarkup:
		return "markup"
	default:
		return "plain"
	}
}

// Parser is implemented by the three closed variants. Parse extracts
// maskable Fragments from doc; Reconstruct rebuilds doc's container from
// the same Fragments and a parallel slice of final (masked) texts.
type Parser interface {
	Kind() Kind
	Parse(doc any) ([]Fragment, error)
	Reconstruct(doc any, fragments []Fragment, masked []string) (any, error)
}

// New returns the Parser for kind.
func New(kind Kind) Parser {
	switch kind {
	case KindStructured:
		return StructuredParser{}
	case KindMarkup:
		return MarkupParser{}
	default:
		return PlainParser{}
	}
}

// Detect selects the parser variant per the auto-detection order in spec
// §4.3, honoring an explicit, non-auto format_hint as an override. When the
// document is itself a non-string composite value, the structured parser
// is always used regardless of hint: only it can walk a tree.
func Detect(doc any, hint config.FormatHint) Kind {
	if isComposite(doc) {
		return KindStructured
	}

	switch hint {
	case config.FormatText:
		return KindPlain
	case config.FormatStructured:
		return KindStructured
	case config.FormatMarkup:
		return KindMarkup
	}

	text, ok := doc.(string)
	if !ok {
		return KindStructured
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">") {
		return KindMarkup
	}
	return KindPlain
}

// isComposite reports whether doc is a non-string tree value (map or
// slice) rather than a scalar or a raw string payload.
func isComposite(doc any) bool {
	switch doc.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
