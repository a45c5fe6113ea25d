package format

import (
	"testing"

	"github.com/bimmerbailey/sanictl/internal/config"
)

func TestDetectComposite(t *testing.T) {
	if got := Detect(map[string]any{"a": "b"}, config.FormatAuto); got != KindStructured {
		t.Errorf("Detect(map) = %v, want KindStructured", got)
	}
	if got := Detect([]any{"a"}, config.FormatAuto); got != KindStructured {
		t.Errorf("Detect(slice) = %v, want KindStructured", got)
	}
}

func TestDetectMarkup(t *testing.T) {
	if got := Detect("  <p>hi</p>", config.FormatAuto); got != KindMarkup {
		t.Errorf("Detect(markup string) = %v, want KindMarkup", got)
	}
}

func TestDetectPlain(t *testing.T) {
	if got := Detect("just some text", config.FormatAuto); got != KindPlain {
		t.Errorf("Detect(plain string) = %v, want KindPlain", got)
	}
}

func TestDetectHintOverridesString(t *testing.T) {
	if got := Detect("no angle brackets here", config.FormatMarkup); got != KindMarkup {
		t.Errorf("Detect() with format_hint=markup = %v, want KindMarkup", got)
	}
}

func TestDetectCompositeIgnoresNonStructuredHint(t *testing.T) {
	if got := Detect(map[string]any{"a": "b"}, config.FormatText); got != KindStructured {
		t.Errorf("Detect(map) with format_hint=text = %v, want KindStructured (only structured parser can walk a tree)", got)
	}
}
