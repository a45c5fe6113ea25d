package format

import (
	"reflect"
	"testing"
)

func TestStructuredParserEmitsStringLeavesOnly(t *testing.T) {
	p := StructuredParser{}
	doc := map[string]any{
		"user": map[string]any{
			"email": "a@b.co",
			"age":   float64(30),
		},
		"tags": []any{"x", "y"},
	}

	fragments, err := p.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(fragments) != 3 {
		t.Fatalf("Parse() = %+v, want 3 string-leaf fragments", fragments)
	}
	for _, f := range fragments {
		if f.Locator.Kind != LocatorPath {
			t.Errorf("fragment %+v has non-path locator", f)
		}
	}
}

func TestStructuredParserReconstructPreservesShape(t *testing.T) {
	p := StructuredParser{}
	doc := map[string]any{
		"user":  map[string]any{"email": "a@b.co", "email2": "a@b.co"},
		"count": float64(3),
	}

	fragments, err := p.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	masked := make([]string, len(fragments))
	for i, f := range fragments {
		masked[i] = "<<EMAIL_7A9B2C_1>>"
		_ = f
	}

	out, err := p.Reconstruct(doc, fragments, masked)
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	want := map[string]any{
		"user":  map[string]any{"email": "<<EMAIL_7A9B2C_1>>", "email2": "<<EMAIL_7A9B2C_1>>"},
		"count": float64(3),
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Reconstruct() = %+v, want %+v", out, want)
	}

	// original must be untouched (Reconstruct deep-copies).
	if doc["user"].(map[string]any)["email"] != "a@b.co" {
		t.Error("Reconstruct() mutated the original document")
	}
}

func TestStructuredParserDecodesJSONStringInput(t *testing.T) {
	p := StructuredParser{}
	doc := `{"user":{"email":"a@b.co"},"count":3}`

	fragments, err := p.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(fragments) != 1 {
		t.Fatalf("Parse() = %+v, want 1 fragment", fragments)
	}

	out, err := p.Reconstruct(doc, fragments, []string{"<<EMAIL_7A9B2C_1>>"})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if _, ok := out.(string); !ok {
		t.Fatalf("Reconstruct() = %T, want string when input was a JSON string", out)
	}
}

func TestStructuredParserPassesThroughNonStringLeaves(t *testing.T) {
	p := StructuredParser{}
	doc := map[string]any{"flag": true, "n": nil, "count": float64(1)}

	fragments, err := p.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("Parse() = %+v, want no fragments for non-string leaves", fragments)
	}
}
