package recognizer

// canonicalLabels maps the model-family shorthand a sequence-labeling model
// tends to emit (PER/ORG/LOC and the common NER-scheme variants) to the
// canonical label placeholders are minted under (spec §4.2).
var canonicalLabels = map[string]string{
	"PER":          "NAME",
	"PERSON":       "NAME",
	"NAME":         "NAME",
	"ORG":          "ORGANIZATION",
	"ORGANIZATION": "ORGANIZATION",
	"LOC":          "LOCATION",
	"LOCATION":     "LOCATION",
	"GPE":          "LOCATION",
}

func normalizeLabel(raw string) (string, bool) {
	label, ok := canonicalLabels[raw]
	return label, ok
}

func canonicalLabelSet() map[string]struct{} {
	set := make(map[string]struct{}, 3)
	for _, v := range canonicalLabels {
		set[v] = struct{}{}
	}
	return set
}
