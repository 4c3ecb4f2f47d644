package prompts

import (
	"encoding/json"
	"fmt"
)

// BuildSymptomPrompt embeds the reported symptoms in an instruction that asks
// for a strict JSON analysis.
func BuildSymptomPrompt(symptoms []string) (string, error) {
	if symptoms == nil {
		symptoms = []string{}
	}
	symptomsJSON, err := json.Marshal(symptoms)
	if err != nil {
		return "", fmt.Errorf("marshal symptoms: %w", err)
	}

	return fmt.Sprintf(`You are a careful medical assistant helping a user understand their symptoms.

Reported symptoms: %s

Based on these symptoms, provide:
1. 3 to 4 possible conditions, most likely first, each with a probability of "High", "Medium" or "Low" and a one-sentence description
2. 2 to 3 home-care or over-the-counter medication suggestions
3. 2 to 3 recommended next steps

Respond with JSON only, no markdown code fences and no extra text, matching exactly this structure:
{
  "predictions": [
    {
      "condition": "name of the condition",
      "probability": "High|Medium|Low",
      "description": "short explanation"
    }
  ],
  "medications": ["suggestion"],
  "nextSteps": ["recommended action"]
}

If a symptom could indicate an emergency, say so in the next steps.`, string(symptomsJSON)), nil
}
