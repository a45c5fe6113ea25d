// Package output renders sanitize results in text, JSON, or table form.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/sanictl/internal/detect"
	"github.com/bimmerbailey/sanictl/internal/mask"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// sanitizedDoc is the JSON/table shape for one sanitize call's output.
type sanitizedDoc struct {
	Output   any               `json:"output"`
	Warnings []detect.Warning  `json:"warnings,omitempty"`
	Map      map[string]string `json:"rehydration_map,omitempty"`
}

// WriteResult outputs a sanitize result in the configured format. includeMap
// controls whether the rehydration map is included (callers storing it in a
// session instead of printing it should pass false).
func (wr *Writer) WriteResult(output any, warnings []detect.Warning, m *mask.RehydrationMap, includeMap bool) error {
	doc := sanitizedDoc{Output: output, Warnings: warnings}
	if includeMap && m != nil {
		doc.Map = m.AsDocument()
	}

	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(doc)
	case FormatTable:
		return wr.writeTable(doc)
	default:
		return wr.writeText(doc)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v any) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeText(doc sanitizedDoc) error {
	switch out := doc.Output.(type) {
	case string:
		fmt.Fprintln(wr.w, out)
	default:
		if err := wr.WriteJSON(out); err != nil {
			return err
		}
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(wr.w, "warning: %s: %s\n", w.Kind, w.Message)
	}
	return nil
}

func (wr *Writer) writeTable(doc sanitizedDoc) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLACEHOLDER\tLABEL\tORIGINAL")
	fmt.Fprintln(tw, "-----------\t-----\t--------")

	for placeholder, original := range doc.Map {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", placeholder, labelOf(placeholder), truncate(original, 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, w := range doc.Warnings {
		fmt.Fprintf(wr.w, "warning: %s: %s\n", w.Kind, w.Message)
	}
	return nil
}

func labelOf(placeholder string) string {
	inner := strings.Trim(placeholder, "<>")
	// Strip the trailing _HEX and _ORDINAL segments; the label itself may
	// contain underscores (CREDIT_CARD_NUMBER).
	for i := 0; i < 2; i++ {
		idx := strings.LastIndex(inner, "_")
		if idx <= 0 {
			return inner
		}
		inner = inner[:idx]
	}
	return inner
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
