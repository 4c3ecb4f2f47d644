package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/06piyush13/MedicalTracker-APP/pkg/metrics"
)

// DisplayMetrics prints gathered analyzer samples, one per line.
func DisplayMetrics(w io.Writer, samples []metrics.Sample) {
	fmt.Fprintln(w)
	color.New(color.FgWhite, color.Bold).Fprintln(w, "📈 ANALYZER METRICS:")
	if len(samples) == 0 {
		fmt.Fprintln(w, "   (none recorded)")
		return
	}
	for _, s := range samples {
		line := fmt.Sprintf("   %s%s %g", s.Name, formatLabels(s.Labels), s.Value)
		if s.Sum != 0 {
			line += fmt.Sprintf(" (sum %.3fs)", s.Sum)
		}
		fmt.Fprintln(w, line)
	}
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, labels[k]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
