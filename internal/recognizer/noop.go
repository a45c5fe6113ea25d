package recognizer

import "github.com/bimmerbailey/sanictl/internal/detect"

// NoOp is a Recognizer that is never available. It satisfies detect.Recognizer
// so the orchestrator can bind one unconditionally and always degrade
// cleanly to regex-only detection (spec §4.2).
type NoOp struct{}

func (NoOp) Available() bool                         { return false }
func (NoOp) LabelText(string) ([]detect.Span, error) { return nil, nil }
func (NoOp) CanonicalLabels() map[string]struct{}    { return nil }
