package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tstris/internal/config"
)

var flagRulesDefault bool

var rulesCmd = &cobra.Command{
	Use:   "rules <variant>",
	Short: "Print the effective rules of a variant",
	Long: `Print the rules a variant would be played with, as YAML.

The output merges the embedded defaults, any user or local rules file,
--config and --difficulty. It can be saved and edited as a starting
point for a custom rules file.

Examples:
  tstris rules classic
  tstris rules marathon --difficulty hard
  tstris rules classic --default > ~/.tstris/configs/classic.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesDefault, "default", false, "Print the embedded default file unchanged")
}

func runRules(_ *cobra.Command, args []string) {
	variant := args[0]

	if flagRulesDefault {
		data := config.GetDefaultYAML(variant)
		if data == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	rules, err := effectiveRules(variant, flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding rules: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// effectiveRules loads a variant and applies the difficulty preset.
func effectiveRules(variant, path, difficulty string) (config.RulesConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.RulesConfig{}, err
	}
	rules, err := config.Load(variant, path)
	if err != nil {
		return config.RulesConfig{}, err
	}
	config.ApplyPreset(&rules, preset)

	// Catch bad policy names before printing
	if _, err := rules.Options(1); err != nil {
		return config.RulesConfig{}, err
	}
	return rules, nil
}
