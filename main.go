package main

import (
	"fmt"
	"os"

	"github.com/06piyush13/MedicalTracker-APP/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symptom-check",
		Short: "AI-assisted symptom checker",
		Long: `symptom-check suggests possible conditions, medications and next steps
for a set of reported symptoms. It asks an AI model first and falls back to a
built-in rule table, so it always produces an answer.

It is not a substitute for professional medical advice.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewBatchCmd(),
		cmd.NewSymptomsCmd(),
		cmd.NewRulesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "symptom-check version %s\n", version)
		},
	}
}
