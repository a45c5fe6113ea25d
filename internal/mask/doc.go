// Package mask derives deterministic, content-addressed placeholders for
// detected spans, rewrites fragment text to substitute them, and reverses
// the substitution given a RehydrationMap (spec §4.5).
package mask
