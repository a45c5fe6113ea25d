package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// maxStructuredDepth bounds tree recursion. The data model is a tree, not a
// graph (spec §9); a self-referential structure built directly in Go (never
// produced by decoding JSON) would recurse forever without this cap.
const maxStructuredDepth = 1000

// ErrMaxDepthExceeded is returned when a structured document nests deeper
// than maxStructuredDepth, which this parser treats as a malformed
// (possibly cyclic) tree rather than scanning indefinitely.
var ErrMaxDepthExceeded = errors.New("structured document exceeds maximum nesting depth")

// StructuredParser walks a key/value tree, emitting one Fragment per string
// leaf (spec §4.3, "Structured Parser"). Keys are never masked, only values.
//
// Parse accepts either an already-decoded tree (map[string]any / []any /
// scalars) or a JSON document string, which is decoded first. Reconstruct
// mirrors whichever form was given to Parse.
type StructuredParser struct{}

func (StructuredParser) Kind() Kind { return KindStructured }

func (StructuredParser) Parse(doc any) ([]Fragment, error) {
	tree, err := asTree(doc)
	if err != nil {
		return nil, err
	}

	var fragments []Fragment
	if err := walkStructured(tree, nil, 0, &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

func (StructuredParser) Reconstruct(doc any, fragments []Fragment, masked []string) (any, error) {
	if len(fragments) != len(masked) {
		return nil, fmt.Errorf("structured parser reconstruct: %d fragments but %d replacements", len(fragments), len(masked))
	}

	tree, err := asTree(doc)
	if err != nil {
		return nil, err
	}
	out := deepCopyTree(tree)

	for i, frag := range fragments {
		if frag.Locator.Kind != LocatorPath {
			return nil, fmt.Errorf("structured parser reconstruct: fragment %d has a non-path locator", i)
		}
		if err := setAtPath(out, frag.Locator.Path, masked[i]); err != nil {
			return nil, err
		}
	}

	if _, wasString := doc.(string); wasString {
		encoded, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("re-encode structured document: %w", err)
		}
		return string(encoded), nil
	}
	return out, nil
}

// asTree returns doc as a walkable tree, decoding it from JSON first if it
// was handed in as a string payload.
func asTree(doc any) (any, error) {
	if text, ok := doc.(string); ok {
		var tree any
		if err := json.Unmarshal([]byte(text), &tree); err != nil {
			return nil, fmt.Errorf("decode structured document: %w", err)
		}
		return tree, nil
	}
	return doc, nil
}

func walkStructured(node any, path []PathStep, depth int, fragments *[]Fragment) error {
	if depth > maxStructuredDepth {
		return ErrMaxDepthExceeded
	}

	switch v := node.(type) {
	case string:
		stepPath := make([]PathStep, len(path))
		copy(stepPath, path)
		*fragments = append(*fragments, Fragment{Text: v, Locator: Locator{Kind: LocatorPath, Path: stepPath}})
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := walkStructured(v[k], append(path, PathStep{Key: k}), depth+1, fragments); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range v {
			if err := walkStructured(elem, append(path, PathStep{Index: i, IsIndex: true}), depth+1, fragments); err != nil {
				return err
			}
		}
	default:
		// numbers, booleans, null: passed through untouched, no fragment.
	}
	return nil
}

func deepCopyTree(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = deepCopyTree(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = deepCopyTree(val)
		}
		return out
	default:
		return v
	}
}

func setAtPath(node any, path []PathStep, value string) error {
	if len(path) == 0 {
		return errors.New("structured parser: empty locator path")
	}

	step := path[0]
	if len(path) == 1 {
		switch v := node.(type) {
		case map[string]any:
			if step.IsIndex {
				return fmt.Errorf("structured parser: expected map key, got index %d", step.Index)
			}
			v[step.Key] = value
			return nil
		case []any:
			if !step.IsIndex {
				return fmt.Errorf("structured parser: expected index, got key %q", step.Key)
			}
			v[step.Index] = value
			return nil
		default:
			return fmt.Errorf("structured parser: locator path does not match document shape at leaf")
		}
	}

	switch v := node.(type) {
	case map[string]any:
		if step.IsIndex {
			return fmt.Errorf("structured parser: expected map key, got index %d", step.Index)
		}
		child, ok := v[step.Key]
		if !ok {
			return fmt.Errorf("structured parser: locator key %q not found", step.Key)
		}
		return setAtPath(child, path[1:], value)
	case []any:
		if !step.IsIndex {
			return fmt.Errorf("structured parser: expected index, got key %q", step.Key)
		}
		if step.Index < 0 || step.Index >= len(v) {
			return fmt.Errorf("structured parser: locator index %d out of range", step.Index)
		}
		return setAtPath(v[step.Index], path[1:], value)
	default:
		return fmt.Errorf("structured parser: locator path descends into a non-composite value")
	}
}
