package formatter

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/06piyush13/MedicalTracker-APP/pkg/metrics"
	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleCheck() model.Check {
	return model.Check{
		Name:     "morning",
		Symptoms: []string{"Fever", "Sore Throat"},
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				{Condition: "Strep Throat", Probability: model.ProbabilityHigh, Description: "Bacterial infection."},
				{Condition: "Tonsillitis", Probability: model.ProbabilityMedium, Description: "Inflamed tonsils."},
			},
			Medications: []string{"Throat lozenges", "Pain relievers"},
			NextSteps:   []string{"Get a throat swab test", "Avoid cold drinks"},
		},
	}
}

func TestDisplayResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sampleCheck(), "json"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "predictions")
	assert.Contains(t, decoded, "medications")
	assert.Contains(t, decoded, "nextSteps")
	assert.NotContains(t, decoded, "symptoms")

	var result model.AnalysisResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, sampleCheck().Result, result)
}

func TestDisplayResultsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sampleCheck(), "yaml"))
	assert.Contains(t, buf.String(), "nextSteps:")
	assert.Contains(t, buf.String(), "probability: High")

	var result model.AnalysisResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, sampleCheck().Result, result)
}

func TestDisplayResultsHuman(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sampleCheck(), "human"))
	out := buf.String()

	assert.Contains(t, out, "morning")
	assert.Contains(t, out, "Symptoms: Fever, Sore Throat")
	assert.Contains(t, out, "1. 🔴 Strep Throat (High)")
	assert.Contains(t, out, "2. 🟡 Tonsillitis (Medium)")
	assert.Contains(t, out, "• Throat lozenges")
	assert.Contains(t, out, "1. Get a throat swab test")
	assert.Contains(t, strings.Join(strings.Fields(out), " "), "not professional medical advice")
}

func TestDisplayResultsHumanNoSymptoms(t *testing.T) {
	var buf bytes.Buffer
	c := sampleCheck()
	c.Symptoms = nil
	require.NoError(t, DisplayResults(&buf, c, "unknown-format-falls-back"))
	assert.Contains(t, buf.String(), "Symptoms: none reported")
}

func TestDisplayReport(t *testing.T) {
	var buf bytes.Buffer
	second := sampleCheck()
	second.Name = ""
	second.Symptoms = []string{"Earache"}
	second.Result.Predictions = second.Result.Predictions[:1]

	displayReport(&buf, []model.Check{sampleCheck(), second}, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "MEDICAL HEALTH REPORT\n"))
	assert.Contains(t, out, "Generated: 2026-10-19")
	assert.Contains(t, out, "HEALTH CHECK HISTORY (2 checks)")
	assert.Contains(t, out, "Check #1 - morning\n")
	assert.Contains(t, out, "Check #2\n")
	assert.Contains(t, out, "Assessment: Strep Throat (High)")
	assert.Contains(t, out, "Also considered: Tonsillitis (Medium)")
	assert.Equal(t, 1, strings.Count(out, "Also considered"))
	assert.Contains(t, out, "Suggested Medications: Throat lozenges, Pain relievers")
	assert.Contains(t, out, "Next Steps: Get a throat swab test, Avoid cold drinks")
	assert.Contains(t, out, "DISCLAIMER\n----------\n")
}

func TestDisplayChecksJSONKeepsOrder(t *testing.T) {
	first := sampleCheck()
	second := sampleCheck()
	second.Name = "evening"

	var buf bytes.Buffer
	require.NoError(t, DisplayChecks(&buf, []model.Check{first, second}, "json"))

	var decoded []model.Check
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "morning", decoded[0].Name)
	assert.Equal(t, "evening", decoded[1].Name)
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, ValidFormat(f), f)
	}
	assert.False(t, ValidFormat("xml"))
}

func TestDisplayMetrics(t *testing.T) {
	var buf bytes.Buffer
	DisplayMetrics(&buf, []metrics.Sample{
		{Name: "symptom_check_analyzer_analyses_total", Labels: map[string]string{"tier": "local"}, Value: 2},
		{Name: "symptom_check_analyzer_remote_latency_seconds", Labels: map[string]string{"outcome": "ok", "model": "m"}, Value: 1, Sum: 0.25},
	})
	out := buf.String()
	assert.Contains(t, out, `symptom_check_analyzer_analyses_total{tier="local"} 2`)
	assert.Contains(t, out, `symptom_check_analyzer_remote_latency_seconds{model="m",outcome="ok"} 1 (sum 0.250s)`)

	buf.Reset()
	DisplayMetrics(&buf, nil)
	assert.Contains(t, buf.String(), "(none recorded)")
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 10, "  ")
	assert.Equal(t, "  one two\n  three\n  four", got)
}
