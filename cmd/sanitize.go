package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/sanictl/internal/config"
	"github.com/bimmerbailey/sanictl/internal/detect"
	"github.com/bimmerbailey/sanictl/internal/output"
	"github.com/bimmerbailey/sanictl/internal/patternpack"
	"github.com/bimmerbailey/sanictl/internal/recognizer"
	"github.com/bimmerbailey/sanictl/internal/sanitizer"
	"github.com/bimmerbailey/sanictl/internal/session"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [flags] [file]",
	Short: "Detect and mask PII in a document",
	Long: `Read a document from a file (or stdin) and write a masked copy,
replacing each distinct piece of PII with a deterministic placeholder.

Examples:
  sanictl sanitize input.txt
  sanictl sanitize --regex-only --format json input.json
  sanictl sanitize --session s1 --strict-validation input.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSanitize,
}

func init() {
	sanitizeCmd.Flags().StringSlice("pack", nil, "pattern packs to load (default: config pattern_packs)")
	sanitizeCmd.Flags().Bool("regex-only", false, "skip the entity recognizer, use regex rules only")
	sanitizeCmd.Flags().Bool("strict-validation", false, "drop regex matches that fail their validator instead of demoting them")
	sanitizeCmd.Flags().Float64("min-confidence", 0, "minimum recognizer confidence to keep a span (0 uses config default)")
	sanitizeCmd.Flags().StringSlice("whitelist", nil, "exact-match values never to mask")
	sanitizeCmd.Flags().StringSlice("mask-types", nil, "labels to mask (default: all)")
	sanitizeCmd.Flags().String("session", "", "session id to persist the rehydration map under")
	sanitizeCmd.Flags().Bool("new-session", false, "generate a random session id instead of passing --session explicitly")
	sanitizeCmd.Flags().String("session-dir", "", "directory for on-disk session storage (default: in-memory, not persisted across runs)")
	sanitizeCmd.Flags().String("ollama-host", "", "Ollama host for the entity recognizer (default: OLLAMA_HOST env or localhost)")
	sanitizeCmd.Flags().String("ollama-model", "llama3.2", "Ollama model used for entity recognition")
	sanitizeCmd.Flags().Bool("show-map", false, "include the rehydration map in the output")

	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(cmd *cobra.Command, args []string) error {
	raw, err := readSanitizeInput(args)
	if err != nil {
		return err
	}

	cfg, err := buildSanitizeConfig(cmd)
	if err != nil {
		return err
	}

	registry, err := patternpack.Load(cfg.PatternPacks, viper.GetString("pattern_pack_dir"))
	if err != nil {
		return fmt.Errorf("load pattern packs: %w", err)
	}

	rec, err := buildRecognizer(cmd, cfg)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	orch, err := sanitizer.New(registry, rec, cfg, logger)
	if err != nil {
		return fmt.Errorf("construct sanitizer: %w", err)
	}

	var input any = raw
	if cfg.FormatHint == config.FormatStructured {
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			input = decoded
		}
	}

	result, err := orch.Sanitize(input)
	if err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}

	sessionID, _ := cmd.Flags().GetString("session")
	if newSession, _ := cmd.Flags().GetBool("new-session"); newSession && sessionID == "" {
		sessionID = uuid.NewString()
	}
	if sessionID != "" {
		store, err := buildStore(cmd)
		if err != nil {
			return err
		}
		if err := store.Put(sessionID, result.Map); err != nil {
			return fmt.Errorf("persist session %q: %w", sessionID, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "session:", sessionID)
	}

	showMap, _ := cmd.Flags().GetBool("show-map")
	format := output.ParseFormat(viper.GetString("format"))
	wr := output.New(cmd.OutOrStdout(), format)
	return wr.WriteResult(result.Output, result.Warnings, result.Map, showMap)
}

func readSanitizeInput(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %q: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func buildSanitizeConfig(cmd *cobra.Command) (config.Config, error) {
	override := config.Config{}

	if packs, _ := cmd.Flags().GetStringSlice("pack"); len(packs) > 0 {
		override.PatternPacks = packs
	}
	if regexOnly, _ := cmd.Flags().GetBool("regex-only"); regexOnly {
		override.RegexOnly = config.Bool(true)
	}
	if strict, _ := cmd.Flags().GetBool("strict-validation"); strict {
		override.StrictValidate = config.Bool(true)
	}
	if minConf, _ := cmd.Flags().GetFloat64("min-confidence"); minConf > 0 {
		override.MinConfidence = minConf
	}
	if whitelist, _ := cmd.Flags().GetStringSlice("whitelist"); len(whitelist) > 0 {
		override.Whitelist = whitelist
	}
	if maskTypes, _ := cmd.Flags().GetStringSlice("mask-types"); len(maskTypes) > 0 {
		override.MaskTypes = maskTypes
	}

	// config.LoadViper strictly decodes the whole viper namespace, which also
	// holds unrelated CLI-wide keys (format, verbose, config); it is meant
	// for a dedicated sanitize config document, not this mixed namespace, so
	// the CLI starts from Default() and layers individually-bound fields.
	base := config.Default()
	if packs := viper.GetStringSlice("pattern_packs"); len(packs) > 0 {
		base.PatternPacks = packs
	}
	if v := viper.GetFloat64("min_confidence"); v != 0 {
		base.MinConfidence = v
	}
	if v := viper.GetInt("max_input_characters"); v != 0 {
		base.MaxInputChars = v
	}
	if v := viper.GetString("placeholder_prefix"); v != "" {
		base.PlaceholderPre = v
	}
	if v := viper.GetString("placeholder_suffix"); v != "" {
		base.PlaceholderSuf = v
	}
	return base.Overlay(override), nil
}

func buildRecognizer(cmd *cobra.Command, cfg config.Config) (detect.Recognizer, error) {
	if cfg.IsRegexOnly() {
		return recognizer.NoOp{}, nil
	}
	host, _ := cmd.Flags().GetString("ollama-host")
	model, _ := cmd.Flags().GetString("ollama-model")
	rec, err := recognizer.NewOllama(recognizer.OllamaConfig{Host: host, Model: model}, slog.Default())
	if err != nil {
		// No reachable Ollama host is a non-fatal degradation (spec §6,
		// RecognizerUnavailable): fall back to regex-only rather than failing
		// the command.
		return recognizer.NoOp{}, nil
	}
	return rec, nil
}

func buildStore(cmd *cobra.Command) (session.Store, error) {
	dir, _ := cmd.Flags().GetString("session-dir")
	if dir == "" {
		return session.NewMemoryStore(), nil
	}
	return session.NewDiskStore(afero.NewOsFs(), dir)
}
