// Package sanitizer wires the Pattern Registry, Entity Recognizer Adapter,
// Format Parser Set, Detection Engine, and Placeholder Engine into the
// orchestrator's end-to-end sanitize and rehydrate operations, with
// optional session-keyed persistence of rehydration maps (spec §4.6).
package sanitizer
