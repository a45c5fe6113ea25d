package mask

import (
	"strings"
	"testing"

	"github.com/bimmerbailey/sanictl/internal/config"
	"github.com/bimmerbailey/sanictl/internal/detect"
)

func TestMaskFragmentStableWithinCall(t *testing.T) {
	m := NewCall(config.Default())

	text := "mail a@b.co and again a@b.co"
	spans := []detect.Span{
		{Label: "EMAIL", Start: 5, End: 11, Text: "a@b.co"},
		{Label: "EMAIL", Start: 22, End: 28, Text: "a@b.co"},
	}

	out, err := m.MaskFragment(text, spans)
	if err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}

	if m.Map().Len() != 1 {
		t.Fatalf("Map().Len() = %d, want 1 (identical pair collapses)", m.Map().Len())
	}

	entries := m.Map().Entries()
	placeholder := entries[0].Placeholder
	wantCount := countOccurrences(out, placeholder)
	if wantCount != 2 {
		t.Errorf("out = %q, want the same placeholder to appear twice", out)
	}
}

func TestMaskFragmentOrdinalsIncrementPerLabel(t *testing.T) {
	m := NewCall(config.Default())

	text := "a@b.co c@d.co"
	spans := []detect.Span{
		{Label: "EMAIL", Start: 0, End: 6, Text: "a@b.co"},
		{Label: "EMAIL", Start: 7, End: 13, Text: "c@d.co"},
	}

	if _, err := m.MaskFragment(text, spans); err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}

	entries := m.Map().Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() = %+v, want 2", entries)
	}
	if entries[0].Ordinal != 1 || entries[1].Ordinal != 2 {
		t.Errorf("ordinals = %d, %d; want 1, 2", entries[0].Ordinal, entries[1].Ordinal)
	}
}

func TestMaskFragmentDescendingRewriteKeepsOffsetsValid(t *testing.T) {
	m := NewCall(config.Default())

	text := "001-234-5678 and jane@example.com"
	spans := []detect.Span{
		{Label: "PHONE", Start: 0, End: 12, Text: "001-234-5678"},
		{Label: "EMAIL", Start: 17, End: 33, Text: "jane@example.com"},
	}

	out, err := m.MaskFragment(text, spans)
	if err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}
	if countOccurrences(out, "PHONE_") != 1 || countOccurrences(out, "EMAIL_") != 1 {
		t.Errorf("out = %q, want one PHONE and one EMAIL placeholder", out)
	}
}

func TestPlaceholderShapeDefaultBrackets(t *testing.T) {
	m := NewCall(config.Default())
	out, err := m.MaskFragment("x@y.co", []detect.Span{{Label: "EMAIL", Start: 0, End: 6, Text: "x@y.co"}})
	if err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}
	if out[:2] != "<<" || out[len(out)-2:] != ">>" {
		t.Errorf("out = %q, want default << >> bracketing", out)
	}
}

func TestRehydrateRoundTrip(t *testing.T) {
	m := NewCall(config.Default())
	text := "Contact jane@example.com or jane@example.com"
	spans := []detect.Span{
		{Label: "EMAIL", Start: 8, End: 24, Text: "jane@example.com"},
		{Label: "EMAIL", Start: 28, End: 44, Text: "jane@example.com"},
	}

	masked, err := m.MaskFragment(text, spans)
	if err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}

	got := Rehydrate(masked, m.Map())
	if got != text {
		t.Errorf("Rehydrate() = %q, want %q", got, text)
	}
}

func TestRehydrateIsIdempotent(t *testing.T) {
	m := NewCall(config.Default())
	masked, err := m.MaskFragment("a@b.co", []detect.Span{{Label: "EMAIL", Start: 0, End: 6, Text: "a@b.co"}})
	if err != nil {
		t.Fatalf("MaskFragment() error = %v", err)
	}

	once := Rehydrate(masked, m.Map())
	twice := Rehydrate(once, m.Map())
	if once != twice {
		t.Errorf("Rehydrate() is not idempotent: %q != %q", once, twice)
	}
}

func TestRehydrateLeavesUnknownPlaceholdersIntact(t *testing.T) {
	m := NewCall(config.Default())
	got := Rehydrate("value <<UNKNOWN_FFFFFF_1>> here", m.Map())
	if got != "value <<UNKNOWN_FFFFFF_1>> here" {
		t.Errorf("Rehydrate() = %q, want unknown placeholder left intact", got)
	}
}

func countOccurrences(s, substr string) int {
	return strings.Count(s, substr)
}
