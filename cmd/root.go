package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sanictl",
	Short: "Detect and mask PII in text, JSON, and markup",
	Long: `sanictl finds and masks personally identifiable information in text,
structured documents, and markup, replacing each distinct match with a
deterministic placeholder and recording the mapping so it can be reversed
later.

Examples:
  sanictl sanitize --pack default input.json
  sanictl sanitize --session s1 --session-dir ./sessions input.txt
  sanictl rehydrate --session s1 --session-dir ./sessions < masked.txt
  sanictl packs list`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sanictl.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".sanictl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SANICTL")
	viper.AutomaticEnv()

	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("pattern_packs", []string{"default"})
	viper.SetDefault("min_confidence", 0.5)
	viper.SetDefault("max_input_characters", 1_000_000)
	viper.SetDefault("placeholder_prefix", "<<")
	viper.SetDefault("placeholder_suffix", ">>")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
