package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
)

// ErrInvalidAnalysis is returned when the model output is not a usable
// analysis. Every error from ParseAnalysis wraps it.
var ErrInvalidAnalysis = errors.New("invalid analysis")

const maxPredictions = 4

type wirePrediction struct {
	Condition   string `json:"condition"`
	Probability string `json:"probability"`
	Description string `json:"description"`
}

// Pointers distinguish a missing field from an empty list.
type wireAnalysis struct {
	Predictions *[]wirePrediction `json:"predictions"`
	Medications *[]string         `json:"medications"`
	NextSteps   *[]string         `json:"nextSteps"`
}

// ParseAnalysis decodes and validates a model response into an
// AnalysisResult. Probabilities are matched case-insensitively; anything
// that does not fit the expected shape is rejected.
func ParseAnalysis(raw string) (*model.AnalysisResult, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidAnalysis)
	}

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	switch {
	case wire.Predictions == nil:
		return nil, fmt.Errorf("%w: missing predictions", ErrInvalidAnalysis)
	case wire.Medications == nil:
		return nil, fmt.Errorf("%w: missing medications", ErrInvalidAnalysis)
	case wire.NextSteps == nil:
		return nil, fmt.Errorf("%w: missing nextSteps", ErrInvalidAnalysis)
	}

	preds := *wire.Predictions
	if len(preds) == 0 || len(preds) > maxPredictions {
		return nil, fmt.Errorf("%w: expected 1-%d predictions, got %d", ErrInvalidAnalysis, maxPredictions, len(preds))
	}

	result := &model.AnalysisResult{
		Predictions: make([]model.ConditionPrediction, 0, len(preds)),
		Medications: compact(*wire.Medications),
		NextSteps:   compact(*wire.NextSteps),
	}
	for i, p := range preds {
		condition := strings.TrimSpace(p.Condition)
		if condition == "" {
			return nil, fmt.Errorf("%w: prediction %d has no condition", ErrInvalidAnalysis, i)
		}
		prob, ok := parseProbability(p.Probability)
		if !ok {
			return nil, fmt.Errorf("%w: prediction %d has probability %q", ErrInvalidAnalysis, i, p.Probability)
		}
		result.Predictions = append(result.Predictions, model.ConditionPrediction{
			Condition:   condition,
			Probability: prob,
			Description: strings.TrimSpace(p.Description),
		})
	}

	return result, nil
}

func parseProbability(value string) (model.Probability, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return model.ProbabilityHigh, true
	case "medium":
		return model.ProbabilityMedium, true
	case "low":
		return model.ProbabilityLow, true
	default:
		return "", false
	}
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n|```")

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}
