package format

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrInvalidMarkup signals that markupParser could not tokenize the input.
// Callers (the orchestrator) must fall back to the plain parser and record
// a non-fatal ParserFallback warning (spec §4.3, §7).
var ErrInvalidMarkup = errors.New("input is not well-formed markup")

// recognizedAttributes are the attribute names whose values are treated as
// maskable text (spec §4.3).
var recognizedAttributes = map[string]bool{
	"alt":         true,
	"title":       true,
	"value":       true,
	"placeholder": true,
}

// MarkupParser extracts text runs between tags and values of recognized
// attributes, recording each fragment's byte range in the original input
// (spec §4.3, "Markup Parser"). It tolerates HTML's unescaped entities and
// optional closing tags by decoding leniently.
type MarkupParser struct{}

func (MarkupParser) Kind() Kind { return KindMarkup }

func (MarkupParser) Parse(doc any) ([]Fragment, error) {
	input, ok := doc.(string)
	if !ok {
		return nil, fmt.Errorf("markup parser requires a string input, got %T", doc)
	}

	dec := newLenientDecoder(input)

	var fragments []Fragment
	offset := int64(0)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
		}
		next := dec.InputOffset()

		switch t := tok.(type) {
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) != "" {
				fragments = append(fragments, Fragment{
					Text:    text,
					Locator: Locator{Kind: LocatorByteRange, Start: int(offset), End: int(next)},
				})
			}
		case xml.StartElement:
			raw := input[offset:next]
			for _, attr := range t.Attr {
				if !recognizedAttributes[strings.ToLower(attr.Name.Local)] {
					continue
				}
				start, end, ok := locateAttrValue(raw, attr.Value)
				if !ok {
					continue
				}
				fragments = append(fragments, Fragment{
					Text:    attr.Value,
					Locator: Locator{Kind: LocatorByteRange, Start: int(offset) + start, End: int(offset) + end},
				})
			}
		}

		offset = next
	}

	return fragments, nil
}

func (MarkupParser) Reconstruct(doc any, fragments []Fragment, masked []string) (any, error) {
	if len(fragments) != len(masked) {
		return nil, fmt.Errorf("markup parser reconstruct: %d fragments but %d replacements", len(fragments), len(masked))
	}

	input, ok := doc.(string)
	if !ok {
		return nil, fmt.Errorf("markup parser requires a string input, got %T", doc)
	}

	order := make([]int, len(fragments))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fragments[order[a]].Locator.Start > fragments[order[b]].Locator.Start
	})

	out := input
	for _, i := range order {
		loc := fragments[i].Locator
		if loc.Kind != LocatorByteRange {
			return nil, fmt.Errorf("markup parser reconstruct: fragment %d has a non-byte-range locator", i)
		}
		out = out[:loc.Start] + masked[i] + out[loc.End:]
	}
	return out, nil
}

// newLenientDecoder configures an xml.Decoder to tolerate the parts of HTML
// that are not well-formed XML: unescaped entities and unclosed void
// elements.
func newLenientDecoder(input string) *xml.Decoder {
	dec := xml.NewDecoder(strings.NewReader(input))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	return dec
}

// locateAttrValue finds value's byte range within raw (a single start-tag's
// source text), accounting for the surrounding quote character. It returns
// ok=false if value cannot be found verbatim (e.g. it was entity-escaped in
// the source), in which case the caller skips that fragment rather than
// risk splicing the wrong bytes.
func locateAttrValue(raw, value string) (start, end int, ok bool) {
	for _, quote := range []string{`"`, `'`} {
		if idx := strings.Index(raw, quote+value+quote); idx != -1 {
			return idx + 1, idx + 1 + len(value), true
		}
	}
	// Unquoted attribute value (tolerated by the lenient decoder).
	if idx := strings.Index(raw, "="+value); idx != -1 {
		return idx + 1, idx + 1 + len(value), true
	}
	return 0, 0, false
}
