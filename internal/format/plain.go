package format

import "fmt"

// PlainParser treats the whole input as a single maskable fragment
// (spec §4.3, "Plain Parser").
type PlainParser struct{}

func (PlainParser) Kind() Kind { return KindPlain }

func (PlainParser) Parse(doc any) ([]Fragment, error) {
	text, ok := doc.(string)
	if !ok {
		return nil, fmt.Errorf("plain parser requires a string input, got %T", doc)
	}
	return []Fragment{{Text: text, Locator: Locator{Kind: LocatorWhole}}}, nil
}

func (PlainParser) Reconstruct(_ any, _ []Fragment, masked []string) (any, error) {
	if len(masked) != 1 {
		return nil, fmt.Errorf("plain parser reconstruct expects exactly one fragment, got %d", len(masked))
	}
	return masked[0], nil
}
