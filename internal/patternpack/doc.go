// Package patternpack loads, validates and compiles pattern packs into a
// prioritized rule table.
//
// A pack is a named, versioned YAML document listing labeled detection
// rules (spec §3, §6). Packs are resolved from a built-in embedded search
// path or an explicit directory; compilation of any regular expression in
// any loaded pack fails the whole load, so a Registry's rule table is either
// fully valid or not returned at all.
//
// Compiled rules are immutable after Load and safe to share across
// concurrently running sanitize calls (spec §5).
package patternpack
