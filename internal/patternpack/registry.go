package patternpack

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var builtinPacks embed.FS

// CompiledRule is a single detection rule after schema validation and regex
// compilation. Fields are immutable after Load and safe to read from many
// concurrent sanitize calls.
type CompiledRule struct {
	Label     string
	Regexes   []*regexp.Regexp
	Tier      int
	Language  string
	Country   string
	Validator Validator

	PackName  string
	PackOrder int
	RuleOrder int
}

// Registry holds the compiled, prioritized rule table produced by Load.
type Registry struct {
	rules []CompiledRule
}

// Rules returns the compiled rules in stable order: pack load order, then
// rule order within a pack (spec §4.1).
func (r *Registry) Rules() []CompiledRule {
	return r.rules
}

// Load resolves each pack name to a document, validates its schema, and
// compiles every regular expression. A failure in any pack fails the whole
// load — there is no partial Registry.
//
// dir, if non-empty, is searched before the built-in embedded packs,
// allowing callers to override or add packs without recompiling sanictl.
func Load(packNames []string, dir string) (*Registry, error) {
	reg := &Registry{}

	for packOrder, name := range packNames {
		raw, err := resolvePack(name, dir)
		if err != nil {
			return nil, err
		}

		if err := checkPackRootFields(raw); err != nil {
			return nil, fmt.Errorf("%w: pack %q: %v", ErrPatternPackInvalid, name, err)
		}

		var pack Pack
		if err := yaml.Unmarshal(raw, &pack); err != nil {
			return nil, fmt.Errorf("%w: pack %q: %v", ErrPatternPackInvalid, name, err)
		}

		seenLabels := make(map[string]struct{}, len(pack.Patterns))
		for ruleOrder, spec := range pack.Patterns {
			label := spec.label()
			if label == "" {
				return nil, fmt.Errorf("%w: pack %q: pattern %d missing name/label", ErrPatternPackInvalid, name, ruleOrder)
			}
			if _, dup := seenLabels[label]; dup {
				return nil, fmt.Errorf("%w: pack %q: duplicate label %q", ErrPatternPackInvalid, name, label)
			}
			seenLabels[label] = struct{}{}

			regexes := make([]*regexp.Regexp, 0, len(spec.Patterns))
			for _, exprSrc := range spec.Patterns {
				expr := exprSrc
				if spec.caseInsensitive() {
					expr = "(?i)" + expr
				}
				re, err := regexp.Compile(expr)
				if err != nil {
					return nil, fmt.Errorf("%w: pack %q label %q: %v", ErrPatternPackInvalid, name, label, err)
				}
				regexes = append(regexes, re)
			}
			if len(regexes) == 0 {
				return nil, fmt.Errorf("%w: pack %q label %q: no patterns", ErrPatternPackInvalid, name, label)
			}

			validator, err := LookupValidator(normalizeValidatorName(spec.Validator))
			if err != nil {
				return nil, fmt.Errorf("%w: pack %q label %q validator %q", err, name, label, spec.Validator)
			}

			reg.rules = append(reg.rules, CompiledRule{
				Label:     label,
				Regexes:   regexes,
				Tier:      normalizeTier(spec.Tier),
				Language:  spec.Language,
				Country:   spec.Country,
				Validator: validator,
				PackName:  pack.Name,
				PackOrder: packOrder,
				RuleOrder: ruleOrder,
			})
		}
	}

	return reg, nil
}

// DiscoverPacks lists every pack name available in dir (one per ".yaml"
// file, minus the extension, sorted), for callers that want "every pack
// this directory defines" rather than a caller-supplied name list.
//
// Unlike a generic file-pattern expansion, a directory with no pack files
// is itself the error here (spec §4.1: Load needs at least one pack name to
// do anything), so this isn't just Glob with the names trimmed.
func DiscoverPacks(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: discovering packs in %q: %v", ErrPackNotFound, dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no pattern packs found in %q", ErrPackNotFound, dir)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	sort.Strings(names)
	return names, nil
}

func normalizeTier(tier int) int {
	if tier != 1 && tier != 2 {
		return 2
	}
	return tier
}

// resolvePack reads a pack document's raw bytes from dir (if set and the
// file exists there) or from the embedded built-in packs.
func resolvePack(name, dir string) ([]byte, error) {
	if dir != "" {
		candidate := filepath.Join(dir, name+".yaml")
		if b, err := os.ReadFile(candidate); err == nil {
			return b, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: reading %q: %v", ErrPatternPackInvalid, candidate, err)
		}
	}

	b, err := builtinPacks.ReadFile("packs/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPackNotFound, name)
	}
	return b, nil
}

// packRootFields are the only keys tolerated at a pack document's root.
// Unlike PatternSpec (which tolerates unknown fields as benign schema
// extensions), an unrecognized root key is a hard error (spec §6).
var packRootFields = map[string]struct{}{
	"name": {}, "description": {}, "version": {}, "patterns": {},
}

func checkPackRootFields(raw []byte) error {
	var root map[string]any
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return err
	}
	for key := range root {
		if _, ok := packRootFields[key]; !ok {
			return fmt.Errorf("unknown pack root field %q", key)
		}
	}
	return nil
}
