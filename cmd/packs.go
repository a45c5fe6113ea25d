package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/sanictl/internal/patternpack"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "Inspect pattern packs",
}

var packsListCmd = &cobra.Command{
	Use:   "list [pack...]",
	Short: "List the rules a pattern pack contributes",
	Long: `Load one or more pattern packs and print each rule's label, tier,
and validator, in the order the Detection Engine applies them.

Examples:
  sanictl packs list default
  sanictl packs list default financial
  sanictl packs list --all --dir ./packs`,
	RunE: runPacksList,
}

func init() {
	packsListCmd.Flags().String("dir", "", "directory to search for pack overrides before built-ins")
	packsListCmd.Flags().Bool("all", false, "load every pack found in --dir instead of naming packs explicitly")

	packsCmd.AddCommand(packsListCmd)
	rootCmd.AddCommand(packsCmd)
}

func runPacksList(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")

	names := args
	if all, _ := cmd.Flags().GetBool("all"); all {
		if dir == "" {
			return fmt.Errorf("--all requires --dir")
		}
		discovered, err := patternpack.DiscoverPacks(dir)
		if err != nil {
			return fmt.Errorf("discover pattern packs: %w", err)
		}
		names = discovered
	}
	if len(names) == 0 {
		names = viper.GetStringSlice("pattern_packs")
		if len(names) == 0 {
			names = []string{"default"}
		}
	}

	registry, err := patternpack.Load(names, dir)
	if err != nil {
		return fmt.Errorf("load pattern packs: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, rule := range registry.Rules() {
		validated := "no"
		if rule.Validator != nil {
			validated = "yes"
		}
		fmt.Fprintf(out, "%-24s tier=%d pack=%s validated=%s\n", rule.Label, rule.Tier, rule.PackName, validated)
	}
	return nil
}
