// Package detect runs the regex registry and (optionally) an entity
// recognizer over a fragment's text, applies validators and filters, and
// resolves overlapping candidates into a non-overlapping, deterministically
// ordered span list (spec §4.4).
package detect
