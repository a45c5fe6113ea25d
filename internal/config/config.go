// Package config provides the sanitization Config struct and the validation
// rules used when it is decoded from a document (CLI flags, YAML/env via
// viper, or a caller-constructed value).
package config

import "fmt"

// FormatHint overrides automatic parser selection.
type FormatHint string

const (
	FormatAuto       FormatHint = "auto"
	FormatText       FormatHint = "text"
	FormatStructured FormatHint = "structured"
	FormatMarkup     FormatHint = "markup"
)

// Config holds the options recognized by the sanitization core (spec §3).
//
// Zero value is not directly usable; construct via Default() and override
// fields, or decode a document into a Config and call Validate().
//
// RegexOnly and StrictValidate are *bool, not bool: Overlay must be able to
// tell "override didn't mention this option" apart from "override explicitly
// sets it to false", and a plain bool's zero value can't carry that
// distinction. Use Bool(true)/Bool(false) to set them explicitly on an
// override value; nil leaves whatever the base Config already had.
type Config struct {
	PatternPacks   []string   `mapstructure:"pattern_packs"`
	RegexOnly      *bool      `mapstructure:"regex_only"`
	MinConfidence  float64    `mapstructure:"min_confidence"`
	StrictValidate *bool      `mapstructure:"strict_validation"`
	Whitelist      []string   `mapstructure:"whitelist"`
	MaskTypes      []string   `mapstructure:"mask_types"`
	PlaceholderPre string     `mapstructure:"placeholder_prefix"`
	PlaceholderSuf string     `mapstructure:"placeholder_suffix"`
	MaxInputChars  int        `mapstructure:"max_input_characters"`
	FormatHint     FormatHint `mapstructure:"format_hint"`
}

// Bool returns a pointer to b, for setting Config.RegexOnly/StrictValidate
// on a value (Config{RegexOnly: config.Bool(true)}).
func Bool(b bool) *bool {
	return &b
}

// IsRegexOnly reports the effective regex_only setting; unset is false.
func (c Config) IsRegexOnly() bool {
	return c.RegexOnly != nil && *c.RegexOnly
}

// IsStrictValidate reports the effective strict_validation setting; unset
// is false.
func (c Config) IsStrictValidate() bool {
	return c.StrictValidate != nil && *c.StrictValidate
}

// Default returns the effective defaults the orchestrator binds a caller's
// Config over. No package-level mutable state: every call constructs a fresh
// value.
func Default() Config {
	return Config{
		PatternPacks:   []string{"default"},
		RegexOnly:      Bool(false),
		MinConfidence:  0.5,
		StrictValidate: Bool(false),
		PlaceholderPre: "<<",
		PlaceholderSuf: ">>",
		MaxInputChars:  1_000_000,
		FormatHint:     FormatAuto,
	}
}

// Merge overlays non-zero fields of override onto a copy of Default().
// Slices and the placeholder brackets are replaced wholesale when present;
// scalars are replaced when override differs from the Config zero value.
func Merge(override Config) Config {
	return Default().Overlay(override)
}

// Overlay overlays non-zero fields of override onto a copy of c. Used by
// callers that already hold a bound Config (e.g. an orchestrator's base)
// and want a per-call variant without re-deriving from Default().
func (c Config) Overlay(override Config) Config {
	if override.PatternPacks != nil {
		c.PatternPacks = override.PatternPacks
	}
	if override.RegexOnly != nil {
		c.RegexOnly = override.RegexOnly
	}
	if override.MinConfidence != 0 {
		c.MinConfidence = override.MinConfidence
	}
	if override.StrictValidate != nil {
		c.StrictValidate = override.StrictValidate
	}
	if override.Whitelist != nil {
		c.Whitelist = override.Whitelist
	}
	if override.MaskTypes != nil {
		c.MaskTypes = override.MaskTypes
	}
	if override.PlaceholderPre != "" {
		c.PlaceholderPre = override.PlaceholderPre
	}
	if override.PlaceholderSuf != "" {
		c.PlaceholderSuf = override.PlaceholderSuf
	}
	if override.MaxInputChars != 0 {
		c.MaxInputChars = override.MaxInputChars
	}
	if override.FormatHint != "" {
		c.FormatHint = override.FormatHint
	}
	return c
}

// Validate rejects out-of-range values. Unknown top-level keys are rejected
// at the decode boundary (see Decode in load.go), not here.
func (c Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0,1], got %v", c.MinConfidence)
	}
	if c.MaxInputChars < 0 {
		return fmt.Errorf("max_input_characters must be >= 0, got %d", c.MaxInputChars)
	}
	switch c.FormatHint {
	case "", FormatAuto, FormatText, FormatStructured, FormatMarkup:
	default:
		return fmt.Errorf("unknown format_hint %q", c.FormatHint)
	}
	if len(c.PatternPacks) == 0 {
		return fmt.Errorf("pattern_packs must name at least one pack")
	}
	return nil
}

// WhitelistSet returns c.Whitelist as a lookup set.
func (c Config) WhitelistSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Whitelist))
	for _, w := range c.Whitelist {
		set[w] = struct{}{}
	}
	return set
}

// MaskTypeSet returns c.MaskTypes as a lookup set. An empty set means "mask
// everything" per spec §4.4 step 4.
func (c Config) MaskTypeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.MaskTypes))
	for _, t := range c.MaskTypes {
		set[t] = struct{}{}
	}
	return set
}
