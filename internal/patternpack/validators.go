package patternpack

import "strings"

// Validator is a named hook resolved at load time. It takes the matched
// substring and reports whether the span is plausible (spec §4.1).
//
// A validator must not panic; the detection engine treats a panicking
// validator call as a validation failure (spec §7), but validators should
// be written defensively regardless since engine-side recover is a safety
// net, not a substitute for correctness.
type Validator func(match string) bool

// builtinValidators is the fixed, closed set of validator names a pattern
// pack may reference. New validators are added here, not discovered
// dynamically — the set is known at compile time (spec §9, "tagged variant,
// not open inheritance" applies equally to this closed registry).
var builtinValidators = map[string]Validator{
	"luhn": luhnValid,
}

// LookupValidator resolves a validator name, returning ErrValidatorUnknown
// if it is not registered.
func LookupValidator(name string) (Validator, error) {
	if name == "" {
		return nil, nil
	}
	v, ok := builtinValidators[name]
	if !ok {
		return nil, ErrValidatorUnknown
	}
	return v, nil
}

// luhnValid implements the Luhn checksum used for credit-card-shaped spans.
// Non-digit separators (space, dash) are tolerated; any other character
// fails validation.
func luhnValid(s string) bool {
	digits := make([]int, 0, len(s))
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, int(c-'0'))
		case c == ' ' || c == '-':
			// separator, skip
		default:
			return false
		}
	}
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}

	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if alt {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		alt = !alt
	}
	return sum%10 == 0
}

// normalizeValidatorName lower-cases a validator token for lookup, tolerant
// of packs that spell it "Luhn" or "LUHN".
func normalizeValidatorName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
