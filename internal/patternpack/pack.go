package patternpack

// Pack is the on-disk schema for a pattern pack document (spec §6).
//
// Unknown fields at the pattern level are tolerated (schema extensions);
// unknown fields at the pack root are rejected by Load, which checks the
// root keys against packRootFields before decoding into Pack.
type Pack struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Version     string        `yaml:"version"`
	Patterns    []PatternSpec `yaml:"patterns"`
}

// PatternSpec is a single rule within a pack document.
type PatternSpec struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label"`
	Patterns  []string `yaml:"patterns"`
	Tier      int      `yaml:"tier"`
	Language  string   `yaml:"language"`
	Country   string   `yaml:"country"`
	Flags     []string `yaml:"flags"`
	Validator string   `yaml:"validator"`
}

// label returns the rule's canonical uppercase label, preferring the
// explicit Label field and falling back to Name for schema tolerance.
func (p PatternSpec) label() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

func (p PatternSpec) caseInsensitive() bool {
	for _, f := range p.Flags {
		if f == "case_insensitive" || f == "i" {
			return true
		}
	}
	return false
}
