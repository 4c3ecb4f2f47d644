package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/06piyush13/MedicalTracker-APP/pkg/model"
)

// Disclaimer accompanies every rendered result.
const Disclaimer = "This analysis is for informational purposes only and is not professional medical advice. " +
	"Always consult a healthcare provider for diagnosis and treatment."

// Formats lists the accepted output formats.
var Formats = []string{"human", "json", "yaml", "report"}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// DisplayResults formats and displays a single analysis. json and yaml emit
// the bare AnalysisResult.
func DisplayResults(w io.Writer, check model.Check, format string) error {
	switch format {
	case "json":
		return displayJSON(w, check.Result)
	case "yaml":
		return displayYAML(w, check.Result)
	case "report":
		displayReport(w, []model.Check{check}, time.Now())
		return nil
	case "human":
		fallthrough
	default:
		displayHuman(w, check)
		fmt.Fprintln(w, strings.Repeat("─", 80))
		fmt.Fprintf(w, "⚠️  %s\n", color.HiBlackString(wrapText(Disclaimer, 76, "")))
		fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
	}
	return nil
}

// DisplayChecks formats several analyses, keeping their order.
func DisplayChecks(w io.Writer, checks []model.Check, format string) error {
	switch format {
	case "json":
		return displayJSON(w, checks)
	case "yaml":
		return displayYAML(w, checks)
	case "report":
		displayReport(w, checks, time.Now())
		return nil
	default:
		for _, c := range checks {
			displayHuman(w, c)
		}
		fmt.Fprintln(w, strings.Repeat("─", 80))
		fmt.Fprintf(w, "⚠️  %s\n", color.HiBlackString(wrapText(Disclaimer, 76, "")))
	}
	return nil
}

func displayJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v interface{}) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, check model.Check) {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	if check.Name != "" {
		cyan.Fprintf(w, "📋 %s\n", check.Name)
	}
	if len(check.Symptoms) > 0 {
		fmt.Fprintf(w, "🤒 Symptoms: %s\n\n", strings.Join(check.Symptoms, ", "))
	} else {
		fmt.Fprintf(w, "🤒 Symptoms: none reported\n\n")
	}

	yellow.Fprintln(w, "🩺 POSSIBLE CONDITIONS:")
	for i, p := range check.Result.Predictions {
		fmt.Fprintf(w, "   %d. %s %s ", i+1, getProbabilityIcon(p.Probability), p.Condition)
		getProbabilityColor(p.Probability).Fprintf(w, "(%s)\n", p.Probability)
		if p.Description != "" {
			fmt.Fprintln(w, wrapText(p.Description, 80, "      "))
		}
	}
	fmt.Fprintln(w)

	if len(check.Result.Medications) > 0 {
		green.Fprintln(w, "💊 MEDICATIONS:")
		for _, m := range check.Result.Medications {
			fmt.Fprintf(w, "   • %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(check.Result.NextSteps) > 0 {
		cyan.Fprintln(w, "👣 NEXT STEPS:")
		for i, s := range check.Result.NextSteps {
			fmt.Fprintf(w, "   %d. %s\n", i+1, s)
		}
		fmt.Fprintln(w)
	}
}

func displayReport(w io.Writer, checks []model.Check, generated time.Time) {
	var b strings.Builder

	b.WriteString("MEDICAL HEALTH REPORT\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02"))

	fmt.Fprintf(&b, "HEALTH CHECK HISTORY (%d checks)\n", len(checks))
	b.WriteString("--------------------------------------------\n\n")

	for i, c := range checks {
		fmt.Fprintf(&b, "Check #%d", i+1)
		if c.Name != "" {
			fmt.Fprintf(&b, " - %s", c.Name)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Symptoms: %s\n", strings.Join(c.Symptoms, ", "))
		if len(c.Result.Predictions) > 0 {
			top := c.Result.Predictions[0]
			fmt.Fprintf(&b, "Assessment: %s (%s)\n", top.Condition, top.Probability)
		}
		if len(c.Result.Predictions) > 1 {
			var others []string
			for _, p := range c.Result.Predictions[1:] {
				others = append(others, fmt.Sprintf("%s (%s)", p.Condition, p.Probability))
			}
			fmt.Fprintf(&b, "Also considered: %s\n", strings.Join(others, ", "))
		}
		if len(c.Result.Medications) > 0 {
			fmt.Fprintf(&b, "Suggested Medications: %s\n", strings.Join(c.Result.Medications, ", "))
		}
		if len(c.Result.NextSteps) > 0 {
			fmt.Fprintf(&b, "Next Steps: %s\n", strings.Join(c.Result.NextSteps, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("DISCLAIMER\n")
	b.WriteString("----------\n")
	b.WriteString(wrapText(Disclaimer, 80, ""))
	b.WriteString("\n")

	fmt.Fprint(w, b.String())
}

func getProbabilityColor(p model.Probability) *color.Color {
	switch p {
	case model.ProbabilityHigh:
		return color.New(color.FgRed)
	case model.ProbabilityMedium:
		return color.New(color.FgYellow)
	case model.ProbabilityLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func getProbabilityIcon(p model.Probability) string {
	switch p {
	case model.ProbabilityHigh:
		return "🔴"
	case model.ProbabilityMedium:
		return "🟡"
	case model.ProbabilityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
