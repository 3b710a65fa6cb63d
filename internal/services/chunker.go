package services

import "strings"

// SplitLines cuts extracted resume text into line-level chunks, the unit of
// retrieval. Lines that are empty after trimming are dropped; surviving
// lines are stored trimmed.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")

	var chunks []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		chunks = append(chunks, line)
	}

	return chunks
}
