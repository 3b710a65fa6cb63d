// Package llmjson decodes JSON out of generative-model responses, which
// routinely arrive wrapped in markdown code fences or surrounded by prose.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFence removes markdown code-fence markup and slices out the
// outermost JSON object or array. Applied uniformly before any decode of
// model output.
func StripCodeFence(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}

// DecodeInto strips fencing from a model response and unmarshals it into
// target.
func DecodeInto(response string, target interface{}) error {
	jsonStr := StripCodeFence(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}
