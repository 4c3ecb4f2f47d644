package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/06piyush13/MedicalTracker-APP/pkg/analyzer"
	"github.com/06piyush13/MedicalTracker-APP/pkg/config"
	"github.com/06piyush13/MedicalTracker-APP/pkg/formatter"
	"github.com/06piyush13/MedicalTracker-APP/pkg/llm"
	"github.com/06piyush13/MedicalTracker-APP/pkg/logging"
	"github.com/06piyush13/MedicalTracker-APP/pkg/metrics"
)

// loadConfig reads .env (if any) and the environment, then sets up logging.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	return cfg, nil
}

type analyzerSettings struct {
	provider string
	model    string
	timeout  time.Duration
	offline  bool
	registry prometheus.Registerer
}

// buildAnalyzer wires the configured provider into an analyzer. A missing
// credential degrades to local-only analysis with a warning rather than
// failing the command.
func buildAnalyzer(ctx context.Context, w io.Writer, cfg *config.Config, s analyzerSettings) (*analyzer.Analyzer, llm.LLM, error) {
	timeout := s.timeout
	if timeout <= 0 {
		timeout = cfg.AnalyzerTimeout
	}
	opts := []analyzer.Option{
		analyzer.WithTimeout(timeout),
		analyzer.WithLogger(logging.New("analyzer")),
	}
	if s.registry != nil {
		opts = append(opts, analyzer.WithMetrics(metrics.NewAnalyzerMetrics(s.registry)))
	}

	providerName := s.provider
	if providerName == "" {
		providerName = cfg.LLMProvider
	}
	provider, err := llm.ParseProvider(providerName)
	if err != nil {
		return nil, nil, err
	}

	if s.offline || !cfg.AnalyzerRemoteEnabled || provider == llm.ProviderNone {
		return analyzer.New(opts...), nil, nil
	}

	apiKey, model, endpoint := cfg.Credentials(string(provider))
	if s.model != "" {
		model = s.model
	}
	if apiKey == "" {
		printWarning(w, fmt.Sprintf("No API key configured for %s, using offline rule table", provider))
		return analyzer.New(opts...), nil, nil
	}

	client, err := llm.NewFactory().CreateLLM(ctx, provider, llm.Config{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	return analyzer.NewWithLLM(client, opts...), client, nil
}

// closeClient releases clients that hold connections, such as the Gemini SDK.
func closeClient(client llm.LLM) {
	if c, ok := client.(io.Closer); ok {
		_ = c.Close()
	}
}

func validateOutput(format string) error {
	if !formatter.ValidFormat(format) {
		return fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(formatter.Formats, ", "))
	}
	return nil
}

// newSpinner writes to stderr so machine-readable stdout stays clean.
func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	return s
}

func printLLMInfo(w io.Writer, client llm.LLM) {
	if client == nil {
		fmt.Fprintf(w, "🧠 Engine: offline rule table\n")
		return
	}
	fmt.Fprintf(w, "🧠 Engine: %s (rule table fallback)\n", client.GetModel())
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "! %s\n", msg)
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	samples, err := metrics.Collect(g)
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	formatter.DisplayMetrics(w, samples)
	return nil
}
