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

func newPacksListTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "list"}
	cmd.SetOut(out)
	cmd.Flags().String("dir", "", "")
	cmd.Flags().Bool("all", false, "")
	return cmd
}

func TestRunPacksListShowsBuiltinDefaultRules(t *testing.T) {
	viper.Reset()

	var out bytes.Buffer
	cmd := newPacksListTestCmd(&out)

	if err := runPacksList(cmd, []string{"default"}); err != nil {
		t.Fatalf("runPacksList() error = %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "EMAIL") {
		t.Errorf("expected EMAIL rule in output, got:\n%s", output)
	}
	if !strings.Contains(output, "validated=yes") {
		t.Errorf("expected at least one validated rule (CREDIT_CARD_NUMBER/luhn), got:\n%s", output)
	}
}

func TestRunPacksListUnknownPackFails(t *testing.T) {
	viper.Reset()

	var out bytes.Buffer
	cmd := newPacksListTestCmd(&out)

	if err := runPacksList(cmd, []string{"does-not-exist"}); err == nil {
		t.Error("expected an error for an unknown pack")
	}
}

func TestRunPacksListAllDiscoversDirectoryPacks(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	packYAML := `name: custom
description: test pack
version: "1.0.0"
patterns:
  - label: WIDGET_ID
    patterns:
      - 'WID-[0-9]{4}'
    tier: 1
`
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(packYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	cmd := newPacksListTestCmd(&out)
	_ = cmd.Flags().Set("dir", dir)
	_ = cmd.Flags().Set("all", "true")

	if err := runPacksList(cmd, nil); err != nil {
		t.Fatalf("runPacksList() error = %v", err)
	}

	if !strings.Contains(out.String(), "WIDGET_ID") {
		t.Errorf("expected discovered pack's rule in output, got:\n%s", out.String())
	}
}

func TestRunPacksListAllWithoutDirFails(t *testing.T) {
	viper.Reset()

	var out bytes.Buffer
	cmd := newPacksListTestCmd(&out)
	_ = cmd.Flags().Set("all", "true")

	if err := runPacksList(cmd, nil); err == nil {
		t.Error("expected an error when --all is set without --dir")
	}
}
