package mask

import "testing"

func TestDigestTableWidensOnCollision(t *testing.T) {
	d := newDigestTable()

	// Force a collision by handing assign() two different pair keys that
	// share the same (fabricated) truncated digest.
	full1 := "aaaaaa1111222233334444"
	full2 := "aaaaaa5555666677778888"

	d1 := d.assign("pair-1", full1)
	d2 := d.assign("pair-2", full2)

	if d1 == d2 {
		t.Fatalf("assign() returned the same digest %q for two distinct pairs", d1)
	}
	if d1 != full1[:baseDigestLen] {
		t.Errorf("assign() for the first pair = %q, want the base-length digest", d1)
	}
	if len(d2) != baseDigestLen+widenStep {
		t.Errorf("assign() for the colliding pair = %q, want widened to %d chars", d2, baseDigestLen+widenStep)
	}
}

func TestDigestTableStableForSamePair(t *testing.T) {
	d := newDigestTable()
	full := "abcdefabcdefabcdefabcdef"

	first := d.assign("same-pair", full)
	second := d.assign("same-pair", full)
	if first != second {
		t.Errorf("assign() = %q then %q, want the same digest for the same pair", first, second)
	}
}

func TestFullDigestNormalizesUnicode(t *testing.T) {
	// A single precomposed rune vs. the same character expressed as a base
	// letter plus a combining accent: visually identical, different bytes.
	precomposed := "caf" + string(rune(0x00E9))
	decomposed := "caf" + "e" + string(rune(0x0301))

	if fullDigest("NAME", precomposed) != fullDigest("NAME", decomposed) {
		t.Error("fullDigest() should normalize Unicode composition before hashing")
	}
}

func TestFullDigestDependsOnLabel(t *testing.T) {
	if fullDigest("EMAIL", "x") == fullDigest("PHONE", "x") {
		t.Error("fullDigest() should depend on label, not just text")
	}
}
