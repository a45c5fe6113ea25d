package sanitizer

import (
	"fmt"
	"log/slog"

	"github.com/bimmerbailey/sanictl/internal/config"
	"github.com/bimmerbailey/sanictl/internal/detect"
	"github.com/bimmerbailey/sanictl/internal/format"
	"github.com/bimmerbailey/sanictl/internal/mask"
	"github.com/bimmerbailey/sanictl/internal/patternpack"
)

// Result is everything a single Sanitize call produces (spec §4.6).
type Result struct {
	Output   any
	Map      *mask.RehydrationMap
	Warnings []detect.Warning
}

// Orchestrator is the sanitization core's single entry point. It owns one
// Config (the effective default for calls that don't override it), one
// Registry, and one recognizer handle; all three are shared, read-only,
// and safe for concurrent Sanitize calls (spec §3 Ownership, §5).
type Orchestrator struct {
	registry   *patternpack.Registry
	recognizer detect.Recognizer
	engine     *detect.Engine
	baseCfg    config.Config
	logger     *slog.Logger
}

// New constructs an Orchestrator bound to baseCfg. recognizer may be nil.
func New(registry *patternpack.Registry, recognizer detect.Recognizer, baseCfg config.Config, logger *slog.Logger) (*Orchestrator, error) {
	if err := baseCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry:   registry,
		recognizer: recognizer,
		engine:     detect.New(registry, recognizer),
		baseCfg:    baseCfg,
		logger:     logger,
	}, nil
}

// Sanitize runs the full pipeline under the orchestrator's bound Config.
func (o *Orchestrator) Sanitize(input any) (*Result, error) {
	return o.sanitize(input, o.baseCfg)
}

// SanitizeWithConfig runs the pipeline under a per-call Config formed by
// overlaying override onto the orchestrator's bound Config, without
// mutating the orchestrator (spec §9, "no module-level mutable state").
func (o *Orchestrator) SanitizeWithConfig(input any, override config.Config) (*Result, error) {
	return o.sanitize(input, o.baseCfg.Overlay(override))
}

func (o *Orchestrator) sanitize(input any, cfg config.Config) (*Result, error) {
	if size := inputSize(input); size > cfg.MaxInputChars {
		return nil, newInputTooLargeError(size, cfg.MaxInputChars)
	}

	kind := format.Detect(input, cfg.FormatHint)
	parser := format.New(kind)
	fragments, err := parser.Parse(input)

	var warnings []detect.Warning
	if err != nil && kind == format.KindMarkup {
		o.logger.Warn("markup parse failed, falling back to plain parser", "error", err)
		warnings = append(warnings, detect.Warning{Kind: "ParserFallback", Message: err.Error()})
		parser = format.PlainParser{}
		fragments, err = parser.Parse(input)
	}
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	masker := mask.NewCall(cfg)
	masked := make([]string, len(fragments))
	for i, frag := range fragments {
		spans, fragWarnings := o.engine.Detect(frag.Text, cfg)
		warnings = append(warnings, fragWarnings...)

		maskedText, err := masker.MaskFragment(frag.Text, spans)
		if err != nil {
			return nil, fmt.Errorf("mask fragment %d: %w", i, err)
		}
		masked[i] = maskedText
	}

	output, err := parser.Reconstruct(input, fragments, masked)
	if err != nil {
		return nil, fmt.Errorf("reconstruct output: %w", err)
	}

	warnings = dedupeWarnings(warnings)
	for _, w := range warnings {
		if w.Kind == "RecognizerUnavailable" {
			o.logger.Warn("entity recognizer unavailable, continuing regex-only", "error", w.Message)
		}
	}

	return &Result{Output: output, Map: masker.Map(), Warnings: warnings}, nil
}

// dedupeWarnings collapses repeated warnings of the same kind, matching the
// "logged once per session" treatment spec §4.4 asks of recognizer
// degradation, extended here to once per call.
func dedupeWarnings(warnings []detect.Warning) []detect.Warning {
	if len(warnings) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(warnings))
	var out []detect.Warning
	for _, w := range warnings {
		if _, ok := seen[w.Kind]; ok {
			continue
		}
		seen[w.Kind] = struct{}{}
		out = append(out, w)
	}
	return out
}

// inputSize measures input against max_input_characters: the rune length
// of a string payload, or the summed rune length of every string leaf in a
// structured tree.
func inputSize(input any) int {
	switch v := input.(type) {
	case string:
		return len([]rune(v))
	case map[string]any:
		total := 0
		for _, val := range v {
			total += inputSize(val)
		}
		return total
	case []any:
		total := 0
		for _, val := range v {
			total += inputSize(val)
		}
		return total
	default:
		return 0
	}
}
