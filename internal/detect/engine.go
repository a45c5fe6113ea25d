package detect

import (
	"sort"

	"github.com/bimmerbailey/sanictl/internal/config"
	"github.com/bimmerbailey/sanictl/internal/patternpack"
)

// Recognizer is the narrow contract the engine consults for model-sourced
// spans (spec §4.2). Implementations live in package recognizer; detect
// only depends on this interface to avoid importing recognizer's Ollama
// client concerns into the detection core.
type Recognizer interface {
	Available() bool
	LabelText(text string) ([]Span, error)

	// CanonicalLabels reports the label set the adapter normalizes its
	// output to (spec §4.2). Spans whose Label falls outside this set are
	// dropped by the recognizer pass.
	CanonicalLabels() map[string]struct{}
}

// Engine runs the regex registry and an optional Recognizer over fragment
// text and resolves the result into a non-overlapping span list.
//
// An Engine is immutable after construction (its Registry and Recognizer are
// themselves safe for concurrent use) and may run Detect concurrently from
// many goroutines (spec §5).
type Engine struct {
	registry   *patternpack.Registry
	recognizer Recognizer
}

// New builds an Engine over the given registry and recognizer. recognizer
// may be nil, equivalent to one whose Available() reports false.
func New(registry *patternpack.Registry, recognizer Recognizer) *Engine {
	return &Engine{registry: registry, recognizer: recognizer}
}

// Warning describes a non-fatal degradation encountered during Detect
// (spec §7). It is accumulated by the caller, not returned as an error.
type Warning struct {
	Kind    string
	Message string
}

// Detect runs the full detection pipeline against text under cfg and
// returns the resolved, non-overlapping span list plus any degradation
// warnings (spec §4.4).
func (e *Engine) Detect(text string, cfg config.Config) ([]Span, []Warning) {
	var candidates []Span
	var warnings []Warning

	candidates = append(candidates, e.regexPass(text, cfg)...)

	if !cfg.IsRegexOnly() {
		modelSpans, warn := e.recognizerPass(text, cfg)
		candidates = append(candidates, modelSpans...)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}

	candidates = filterWhitelist(candidates, cfg.WhitelistSet())
	candidates = filterMaskTypes(candidates, cfg.MaskTypeSet())

	return resolveConflicts(candidates), warnings
}

// regexPass scans text once per compiled rule (spec §4.4 step 1).
func (e *Engine) regexPass(text string, cfg config.Config) []Span {
	if e.registry == nil {
		return nil
	}

	var spans []Span
	for _, rule := range e.registry.Rules() {
		for _, re := range rule.Regexes {
			locs := re.FindAllStringIndex(text, -1)
			for _, loc := range locs {
				match := text[loc[0]:loc[1]]
				tier := rule.Tier

				if rule.Validator != nil && !safeValidate(rule.Validator, match) {
					if cfg.IsStrictValidate() {
						continue
					}
					tier = 2 // kept, but marked low-tier
				}

				spans = append(spans, Span{
					Label:     rule.Label,
					Start:     loc[0],
					End:       loc[1],
					Text:      match,
					Source:    SourceRegex,
					RuleTier:  tier,
					PackOrder: rule.PackOrder,
					RuleOrder: rule.RuleOrder,
				})
			}
		}
	}
	return spans
}

// safeValidate treats a panicking validator as a validation failure
// (spec §7).
func safeValidate(v patternpack.Validator, match string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return v(match)
}

// recognizerPass consults the Recognizer for model-sourced spans, dropping
// those below MinConfidence (spec §4.4 step 2). A recognizer error degrades
// to regex-only for this call.
func (e *Engine) recognizerPass(text string, cfg config.Config) ([]Span, *Warning) {
	if e.recognizer == nil || !e.recognizer.Available() {
		return nil, &Warning{Kind: "RecognizerUnavailable", Message: "no entity recognizer available; continuing regex-only"}
	}

	spans, err := e.recognizer.LabelText(text)
	if err != nil {
		return nil, &Warning{Kind: "RecognizerUnavailable", Message: err.Error()}
	}

	canonical := e.recognizer.CanonicalLabels()
	kept := spans[:0:0]
	for _, s := range spans {
		if s.Confidence < cfg.MinConfidence {
			continue
		}
		if _, ok := canonical[s.Label]; len(canonical) > 0 && !ok {
			continue
		}
		kept = append(kept, s)
	}
	return kept, nil
}

func filterWhitelist(spans []Span, whitelist map[string]struct{}) []Span {
	if len(whitelist) == 0 {
		return spans
	}
	kept := spans[:0:0]
	for _, s := range spans {
		if _, blocked := whitelist[s.Text]; blocked {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func filterMaskTypes(spans []Span, maskTypes map[string]struct{}) []Span {
	if len(maskTypes) == 0 {
		return spans
	}
	kept := spans[:0:0]
	for _, s := range spans {
		if _, allowed := maskTypes[s.Label]; !allowed {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// resolveConflicts sorts candidates per spec §4.4 step 5's tie-break key and
// greedily keeps the first non-overlapping span at each position.
func resolveConflicts(candidates []Span) []Span {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Len() != b.Len() {
			return a.Len() > b.Len() // longer first (-length ascending)
		}
		if a.RuleTier != b.RuleTier {
			return a.RuleTier < b.RuleTier // tier 1 before tier 2
		}
		if a.Source != b.Source {
			return a.Source < b.Source // regex (0) before model (1)
		}
		if a.PackOrder != b.PackOrder {
			return a.PackOrder < b.PackOrder
		}
		return a.RuleOrder < b.RuleOrder
	})

	var accepted []Span
	for _, c := range candidates {
		overlapsAccepted := false
		for _, a := range accepted {
			if c.Overlaps(a) {
				overlapsAccepted = true
				break
			}
		}
		if !overlapsAccepted {
			accepted = append(accepted, c)
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}
