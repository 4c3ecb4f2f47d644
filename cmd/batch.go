package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/06piyush13/MedicalTracker-APP/pkg/analyzer"
	"github.com/06piyush13/MedicalTracker-APP/pkg/formatter"
	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
	"github.com/06piyush13/MedicalTracker-APP/pkg/symptoms"
)

const defaultBatchConcurrency = 4

var (
	batchProvider     string
	batchModel        string
	batchTimeout      time.Duration
	batchOffline      bool
	batchOutputFormat string
	batchConcurrency  int
	batchShowMetrics  bool
)

// batchFile is the on-disk layout read by the batch command.
type batchFile struct {
	Checks []batchEntry `yaml:"checks"`
}

type batchEntry struct {
	Name     string   `yaml:"name"`
	Symptoms []string `yaml:"symptoms"`
}

func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Analyze several symptom sets from a YAML file",
		Long: `Analyze every check listed in a YAML file and print the results in file order.

File format:
  checks:
    - name: monday
      symptoms: [Fever, Cough, Body Ache]
    - name: tuesday
      symptoms: [Headache, Fatigue]

Examples:
  # Print a text health report for all checks
  symptom-check batch history.yaml -o report

  # Rule table only, as JSON
  symptom-check batch history.yaml --offline -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&batchProvider, "provider", "", "LLM provider (gemini, gemini-sdk, claude, openai, none). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&batchModel, "model", "", "LLM model to use (overrides default)")
	cmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "Bound on each AI call before falling back (default from ANALYZER_TIMEOUT)")
	cmd.Flags().BoolVar(&batchOffline, "offline", false, "Skip the AI call and use the rule table only")
	cmd.Flags().StringVarP(&batchOutputFormat, "output", "o", "human", "Output format (human, json, yaml, report)")
	cmd.Flags().IntVar(&batchConcurrency, "concurrency", defaultBatchConcurrency, "Maximum number of checks analyzed at once")
	cmd.Flags().BoolVar(&batchShowMetrics, "metrics", false, "Print analyzer metrics to stderr after the run")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := validateOutput(batchOutputFormat); err != nil {
		return err
	}
	if batchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", batchConcurrency)
	}

	entries, err := loadBatchFile(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var registry *prometheus.Registry
	settings := analyzerSettings{
		provider: batchProvider,
		model:    batchModel,
		timeout:  batchTimeout,
		offline:  batchOffline,
	}
	if batchShowMetrics {
		registry = prometheus.NewRegistry()
		settings.registry = registry
	}

	a, client, err := buildAnalyzer(cmd.Context(), cmd.ErrOrStderr(), cfg, settings)
	if err != nil {
		return err
	}
	defer closeClient(client)

	out := cmd.OutOrStdout()
	human := batchOutputFormat == "human"
	if human {
		fmt.Fprintf(out, "📂 Checks: %d from %s\n", len(entries), args[0])
		printLLMInfo(out, client)
	}

	s := newSpinner(fmt.Sprintf(" Analyzing %d checks...", len(entries)))
	if human {
		s.Start()
	}
	checks, err := analyzeAll(cmd.Context(), a, entries, batchConcurrency)
	s.Stop()
	if err != nil {
		return err
	}
	if human {
		printSuccess(out, "Analysis complete")
	}

	if err := formatter.DisplayChecks(out, checks, batchOutputFormat); err != nil {
		return err
	}

	if registry != nil {
		return printMetrics(cmd.ErrOrStderr(), registry)
	}
	return nil
}

func loadBatchFile(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	if len(f.Checks) == 0 {
		return nil, fmt.Errorf("batch file %s contains no checks", path)
	}
	return f.Checks, nil
}

// analyzeAll runs every entry through a, at most limit at a time. Results
// keep the order of entries.
func analyzeAll(ctx context.Context, a *analyzer.Analyzer, entries []batchEntry, limit int) ([]model.Check, error) {
	checks := make([]model.Check, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			labels := symptoms.CanonicalizeAll(e.Symptoms)
			checks[i] = model.Check{
				Name:     e.Name,
				Symptoms: labels,
				Result:   a.Analyze(ctx, labels),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return checks, nil
}
