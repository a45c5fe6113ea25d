package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSanitizeTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "sanitize"}
	cmd.SetOut(out)
	cmd.Flags().StringSlice("pack", nil, "")
	cmd.Flags().Bool("regex-only", true, "")
	cmd.Flags().Bool("strict-validation", false, "")
	cmd.Flags().Float64("min-confidence", 0, "")
	cmd.Flags().StringSlice("whitelist", nil, "")
	cmd.Flags().StringSlice("mask-types", nil, "")
	cmd.Flags().String("session", "", "")
	cmd.Flags().Bool("new-session", false, "")
	cmd.Flags().String("session-dir", "", "")
	cmd.Flags().String("ollama-host", "", "")
	cmd.Flags().String("ollama-model", "llama3.2", "")
	cmd.Flags().Bool("show-map", false, "")
	return cmd
}

func writeSanitizeInputFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunSanitizeMasksEmailInTextFile(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")

	file := writeSanitizeInputFile(t, "contact jane@example.com today")

	var out bytes.Buffer
	cmd := newSanitizeTestCmd(&out)

	if err := runSanitize(cmd, []string{file}); err != nil {
		t.Fatalf("runSanitize() error = %v", err)
	}

	if strings.Contains(out.String(), "jane@example.com") {
		t.Errorf("output still contains the raw email address: %q", out.String())
	}
	if !strings.Contains(out.String(), "<<EMAIL_") {
		t.Errorf("output missing an EMAIL placeholder: %q", out.String())
	}
}

func TestRunSanitizeJSONIncludesMap(t *testing.T) {
	viper.Reset()
	viper.Set("format", "json")

	file := writeSanitizeInputFile(t, "reach jane@example.com")

	var out bytes.Buffer
	cmd := newSanitizeTestCmd(&out)
	_ = cmd.Flags().Set("show-map", "true")

	if err := runSanitize(cmd, []string{file}); err != nil {
		t.Fatalf("runSanitize() error = %v", err)
	}
	if !strings.Contains(out.String(), `"rehydration_map"`) {
		t.Errorf("expected rehydration_map in JSON output, got: %s", out.String())
	}
}

func TestRunSanitizeNewSessionPersistsAndReportsID(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")

	file := writeSanitizeInputFile(t, "reach jane@example.com")
	sessionDir := t.TempDir()

	var out, errOut bytes.Buffer
	cmd := newSanitizeTestCmd(&out)
	cmd.SetErr(&errOut)
	_ = cmd.Flags().Set("new-session", "true")
	_ = cmd.Flags().Set("session-dir", sessionDir)

	if err := runSanitize(cmd, []string{file}); err != nil {
		t.Fatalf("runSanitize() error = %v", err)
	}

	if !strings.Contains(errOut.String(), "session:") {
		t.Fatalf("expected a reported session id on stderr, got: %q", errOut.String())
	}
}
