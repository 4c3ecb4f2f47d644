package symptoms

import "strings"

// Catalog lists the symptoms offered to users. The analyzer also accepts
// labels outside this list; they simply never match a rule.
var Catalog = []string{
	"Fever",
	"Cough",
	"Sore Throat",
	"Headache",
	"Fatigue",
	"Loss of Taste",
	"Shortness of Breath",
	"Chest Pain",
	"Sneezing",
	"Diarrhea",
	"Nausea",
	"Vomiting",
	"Body Ache",
	"Runny Nose",
	"Skin Rash",
	"Joint Pain",
	"Earache",
}

var byFold = func() map[string]string {
	m := make(map[string]string, len(Catalog))
	for _, s := range Catalog {
		m[strings.ToLower(s)] = s
	}
	return m
}()

// Canonicalize maps a user-typed label onto its catalog spelling, ignoring
// case and surrounding whitespace. Unknown labels come back trimmed.
func Canonicalize(label string) string {
	trimmed := strings.TrimSpace(label)
	if c, ok := byFold[strings.ToLower(trimmed)]; ok {
		return c
	}
	return trimmed
}

// CanonicalizeAll canonicalizes labels, dropping blanks and duplicates while
// keeping first-seen order.
func CanonicalizeAll(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		c := Canonicalize(l)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Known reports whether label is in the catalog (exact spelling).
func Known(label string) bool {
	c, ok := byFold[strings.ToLower(label)]
	return ok && c == label
}
