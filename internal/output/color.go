package output

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bimmerbailey/sanictl/internal/detect"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w any) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeWarning highlights a degradation warning line (spec §7:
// RecognizerUnavailable and ParserFallback are non-fatal but worth calling
// out).
func ColorizeWarning(w detect.Warning, colorize bool) string {
	line := "warning: " + w.Kind + ": " + w.Message
	if !colorize {
		return line
	}
	return colorYellow + line + colorReset
}

// WriteColoredWarning writes a warning line to the writer with color based
// on ColorMode.
func (wr *Writer) WriteColoredWarning(w detect.Warning, mode ColorMode) error {
	colorize := shouldColorize(mode, wr.w)
	_, err := fmt.Fprintln(wr.w, ColorizeWarning(w, colorize))
	return err
}
