package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed rules.md
var rulesMarkdown string

var flagRawRules bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRawRules, "raw", false, "Print the markdown source")
}

func runRules(_ *cobra.Command, _ []string) error {
	if flagRawRules || !isTerminal() {
		fmt.Print(rulesMarkdown)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("cannot create renderer: %w", err)
	}
	out, err := r.Render(rulesMarkdown)
	if err != nil {
		return fmt.Errorf("cannot render rules: %w", err)
	}
	fmt.Print(out)
	return nil
}
