package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/06piyush13/MedicalTracker-APP/pkg/llm"
	"github.com/06piyush13/MedicalTracker-APP/pkg/logging"
	"github.com/06piyush13/MedicalTracker-APP/pkg/metrics"
	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
	"github.com/06piyush13/MedicalTracker-APP/pkg/parser"
	"github.com/06piyush13/MedicalTracker-APP/pkg/prompts"
	"github.com/06piyush13/MedicalTracker-APP/pkg/rules"
)

// DefaultTimeout bounds a single remote analysis call.
const DefaultTimeout = 8 * time.Second

var (
	// ErrRemoteUnavailable covers network failures, timeouts and non-2xx replies.
	ErrRemoteUnavailable = errors.New("remote analysis unavailable")
	// ErrRemoteMalformed covers replies that do not decode into a valid analysis.
	ErrRemoteMalformed = errors.New("remote analysis malformed")

	errRemoteDisabled = errors.New("remote analysis disabled")
)

// Analyzer maps reported symptoms to an AnalysisResult. It asks the
// configured LLM first and falls back to the local rule table on any
// failure. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	llm     llm.LLM
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.AnalyzerMetrics
}

type Option func(*Analyzer)

// WithTimeout sets the bound on the remote call. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithMetrics(m *metrics.AnalyzerMetrics) Option {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// New returns an analyzer that only uses the local rule table.
func New(opts ...Option) *Analyzer {
	return NewWithLLM(nil, opts...)
}

// NewWithLLM returns an analyzer that tries l before the rule table. A nil
// l disables the remote tier.
func NewWithLLM(l llm.LLM, opts ...Option) *Analyzer {
	a := &Analyzer{
		llm:     l,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.New("analyzer")
	}
	return a
}

// RemoteEnabled reports whether an LLM is configured.
func (a *Analyzer) RemoteEnabled() bool {
	return a.llm != nil
}

// Analyze always returns a well-formed result. Remote failures are logged
// and answered from the rule table.
func (a *Analyzer) Analyze(ctx context.Context, symptoms []string) model.AnalysisResult {
	set := model.NewSymptomSet(symptoms...)

	result, err := a.analyzeRemote(ctx, set)
	if err == nil {
		a.metrics.ObserveAnalysis(metrics.TierRemote)
		return *result
	}

	reason := fallbackReason(err)
	if reason == metrics.ReasonDisabled {
		a.logger.Debug("remote analysis disabled, using rule table")
	} else {
		a.logger.Warn("remote analysis failed, using rule table",
			"reason", reason,
			"error", err.Error(),
		)
	}
	a.metrics.ObserveFallback(reason)
	a.metrics.ObserveAnalysis(metrics.TierLocal)
	return a.evaluateLocal(set)
}

// AnalyzeLocal evaluates the rule table only.
func (a *Analyzer) AnalyzeLocal(symptoms []string) model.AnalysisResult {
	return a.evaluateLocal(model.NewSymptomSet(symptoms...))
}

func (a *Analyzer) evaluateLocal(set model.SymptomSet) model.AnalysisResult {
	rule := rules.Match(set)
	a.logger.Debug("rule matched", "rule", rule.Name, "symptoms", set.Labels())
	return rule.Result.Clone()
}

func (a *Analyzer) analyzeRemote(ctx context.Context, set model.SymptomSet) (*model.AnalysisResult, error) {
	if a.llm == nil {
		return nil, errRemoteDisabled
	}

	prompt, err := prompts.BuildSymptomPrompt(set.Labels())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	modelName := a.modelName()
	start := time.Now()
	raw, err := a.chat(ctx, prompt)
	if err != nil {
		a.metrics.ObserveRemoteLatency(modelName, "error", time.Since(start).Seconds())
		if errors.Is(err, llm.ErrMalformedResponse) {
			return nil, fmt.Errorf("%w: %w", ErrRemoteMalformed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	result, err := parser.ParseAnalysis(raw)
	if err != nil {
		a.metrics.ObserveRemoteLatency(modelName, "malformed", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %w", ErrRemoteMalformed, err)
	}
	a.metrics.ObserveRemoteLatency(modelName, "ok", time.Since(start).Seconds())
	return result, nil
}

// modelName is the metrics label for the configured client.
func (a *Analyzer) modelName() (name string) {
	defer func() {
		if r := recover(); r != nil {
			name = "unknown"
		}
	}()
	return a.llm.GetModel()
}

type chatResult struct {
	text string
	err  error
}

// chat runs the LLM call so that the deadline holds even for a client
// that ignores its context. A panicking client counts as unavailable.
func (a *Analyzer) chat(ctx context.Context, prompt string) (string, error) {
	done := make(chan chatResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- chatResult{err: fmt.Errorf("llm: panic: %v", r)}
			}
		}()
		text, err := a.llm.Chat(ctx, prompt)
		done <- chatResult{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, errRemoteDisabled):
		return metrics.ReasonDisabled
	case errors.Is(err, ErrRemoteMalformed):
		return metrics.ReasonMalformed
	default:
		return metrics.ReasonUnavailable
	}
}
