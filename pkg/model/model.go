package model

import "sort"

// Probability is the confidence tier attached to a predicted condition.
type Probability string

const (
	ProbabilityHigh   Probability = "High"
	ProbabilityMedium Probability = "Medium"
	ProbabilityLow    Probability = "Low"
)

// Valid reports whether p is one of the three known tiers.
func (p Probability) Valid() bool {
	switch p {
	case ProbabilityHigh, ProbabilityMedium, ProbabilityLow:
		return true
	}
	return false
}

type ConditionPrediction struct {
	Condition   string      `json:"condition" yaml:"condition"`
	Probability Probability `json:"probability" yaml:"probability"`
	Description string      `json:"description" yaml:"description"`
}

type AnalysisResult struct {
	Predictions []ConditionPrediction `json:"predictions" yaml:"predictions"`
	Medications []string              `json:"medications" yaml:"medications"`
	NextSteps   []string              `json:"nextSteps" yaml:"nextSteps"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (r AnalysisResult) Clone() AnalysisResult {
	out := AnalysisResult{
		Predictions: make([]ConditionPrediction, len(r.Predictions)),
		Medications: make([]string, len(r.Medications)),
		NextSteps:   make([]string, len(r.NextSteps)),
	}
	copy(out.Predictions, r.Predictions)
	copy(out.Medications, r.Medications)
	copy(out.NextSteps, r.NextSteps)
	return out
}

// SymptomSet holds reported symptom labels. Labels are matched exactly.
type SymptomSet map[string]struct{}

func NewSymptomSet(labels ...string) SymptomSet {
	s := make(SymptomSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func (s SymptomSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// HasAll reports whether every label is present.
func (s SymptomSet) HasAll(labels ...string) bool {
	for _, l := range labels {
		if !s.Has(l) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one label is present.
func (s SymptomSet) HasAny(labels ...string) bool {
	for _, l := range labels {
		if s.Has(l) {
			return true
		}
	}
	return false
}

// Labels returns the labels in sorted order.
func (s SymptomSet) Labels() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Check is one analysed symptom set, as shown in reports and batch output.
type Check struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Symptoms []string       `json:"symptoms" yaml:"symptoms"`
	Result   AnalysisResult `json:"result" yaml:"result"`
}
