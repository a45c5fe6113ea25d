// Package format extracts maskable text Fragments from plain, structured
// (key/value tree) and marked-up input, and reconstructs the original
// container once the detection engine and masker have rewritten each
// fragment's text (spec §4.3).
//
// The parser set is a closed tagged variant — plain, structured, and
// markup — selected by a caller's format hint or by auto-detection; there
// is no open interface for registering additional variants.
package format
