package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/06piyush13/MedicalTracker-APP/pkg/formatter"
	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
	"github.com/06piyush13/MedicalTracker-APP/pkg/symptoms"
)

var (
	analyzeSymptoms     []string
	analyzeProvider     string
	analyzeModel        string
	analyzeTimeout      time.Duration
	analyzeOffline      bool
	analyzeOutputFormat string
	analyzeShowMetrics  bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMPTOM...]",
		Short: "Analyze symptoms and suggest possible conditions",
		Long: `Analyze reported symptoms with an AI model, falling back to a built-in rule
table when the model is unavailable or returns something unusable.

Symptom names are matched against the catalog case-insensitively
(see "symptom-check symptoms").

Examples:
  # Analyze a few symptoms
  symptom-check analyze Fever Cough "Body Ache"

  # Same, using flags
  symptom-check analyze -s fever -s "sore throat"

  # Use only the offline rule table
  symptom-check analyze "Chest Pain" --offline

  # Use OpenAI instead of Gemini and print JSON
  symptom-check analyze Headache --provider openai -o json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVarP(&analyzeSymptoms, "symptom", "s", []string{}, "Symptom to analyze (repeatable)")
	cmd.Flags().StringVar(&analyzeProvider, "provider", "", "LLM provider (gemini, gemini-sdk, claude, openai, none). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&analyzeModel, "model", "", "LLM model to use (overrides default)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Bound on the AI call before falling back (default from ANALYZER_TIMEOUT)")
	cmd.Flags().BoolVar(&analyzeOffline, "offline", false, "Skip the AI call and use the rule table only")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", "human", "Output format (human, json, yaml, report)")
	cmd.Flags().BoolVar(&analyzeShowMetrics, "metrics", false, "Print analyzer metrics to stderr after the run")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateOutput(analyzeOutputFormat); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	labels := symptoms.CanonicalizeAll(append(append([]string{}, args...), analyzeSymptoms...))
	out := cmd.OutOrStdout()
	human := analyzeOutputFormat == "human"

	var registry *prometheus.Registry
	settings := analyzerSettings{
		provider: analyzeProvider,
		model:    analyzeModel,
		timeout:  analyzeTimeout,
		offline:  analyzeOffline,
	}
	if analyzeShowMetrics {
		registry = prometheus.NewRegistry()
		settings.registry = registry
	}

	a, client, err := buildAnalyzer(cmd.Context(), cmd.ErrOrStderr(), cfg, settings)
	if err != nil {
		return err
	}
	defer closeClient(client)

	if human {
		printHeader(out)
		printLLMInfo(out, client)
		printUnknown(out, labels)
		fmt.Fprintln(out)
	}

	s := newSpinner(" Analyzing symptoms...")
	if human {
		s.Start()
	}
	result := a.Analyze(cmd.Context(), labels)
	s.Stop()
	if human {
		printSuccess(out, "Analysis complete")
	}

	if err := formatter.DisplayResults(out, model.Check{Symptoms: labels, Result: result}, analyzeOutputFormat); err != nil {
		return err
	}

	if registry != nil {
		return printMetrics(cmd.ErrOrStderr(), registry)
	}
	return nil
}

// printHeader leaves the symptom line to the formatter.
func printHeader(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🩺 Symptom Checker")
}

func printUnknown(w io.Writer, labels []string) {
	var unknown []string
	for _, l := range labels {
		if !symptoms.Known(l) {
			unknown = append(unknown, l)
		}
	}
	if len(unknown) > 0 {
		printWarning(w, fmt.Sprintf("Not in catalog, passed through as-is: %s", strings.Join(unknown, ", ")))
	}
}
