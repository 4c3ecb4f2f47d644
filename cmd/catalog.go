package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/06piyush13/MedicalTracker-APP/pkg/rules"
	"github.com/06piyush13/MedicalTracker-APP/pkg/symptoms"
)

func NewSymptomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symptoms",
		Short: "List the symptoms the checker knows about",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, s := range symptoms.Catalog {
				fmt.Fprintln(out, s)
			}
		},
	}
}

func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the offline rule table in evaluation order",
		Long: `Show the rules used when no AI model is available. Rules are checked
top to bottom and the first one that matches wins.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for i, r := range rules.Table {
				bold.Fprintf(out, "%d. %s", i+1, r.Name)
				fmt.Fprintf(out, " → %s\n", topCondition(r))
			}
			bold.Fprintf(out, "*. %s", rules.Default.Name)
			fmt.Fprintf(out, " → %s\n", topCondition(rules.Default))
		},
	}
}

func topCondition(r rules.Rule) string {
	if len(r.Result.Predictions) == 0 {
		return "-"
	}
	p := r.Result.Predictions[0]
	return fmt.Sprintf("%s (%s)", p.Condition, p.Probability)
}
