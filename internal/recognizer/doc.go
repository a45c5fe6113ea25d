// Package recognizer adapts an optional entity-recognition model to the
// detect.Recognizer contract. The sanitization core never depends on a
// model being present: Ollama.Available reports false when the backend is
// not reachable, NoOp.Available always reports false, and callers degrade
// to regex-only detection.
package recognizer
