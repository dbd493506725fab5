// Package analysis holds the pure text heuristics behind the recall
// check, the writing grader, and the practice-test generator. Nothing
// here touches the store.
package analysis

import (
	"math"
	"strings"
)

// RecallResult scores a blurting session: write from memory, then
// compare against the source notes.
type RecallResult struct {
	Score    int      `json:"score"` // 0-100
	Found    []string `json:"found"`
	Missing  []string `json:"missing"`
	Feedback string   `json:"feedback"`
}

// recallWords lowercases and keeps only words longer than three
// characters; short words carry no concept.
func recallWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// ScoreRecall compares a recall transcript against the source notes.
// A note word counts as found when any transcript word contains it or
// is contained by it, so inflections still match.
func ScoreRecall(notes, transcript string) RecallResult {
	noteWords := recallWords(notes)
	transcriptWords := recallWords(transcript)

	seen := map[string]bool{}
	var unique []string
	for _, w := range noteWords {
		if !seen[w] {
			seen[w] = true
			unique = append(unique, w)
		}
	}

	result := RecallResult{Found: []string{}, Missing: []string{}}
	for _, w := range unique {
		matched := false
		for _, tw := range transcriptWords {
			if strings.Contains(tw, w) || strings.Contains(w, tw) {
				matched = true
				break
			}
		}
		if matched {
			result.Found = append(result.Found, w)
		} else {
			result.Missing = append(result.Missing, w)
		}
	}

	if len(unique) > 0 {
		result.Score = int(math.Round(float64(len(result.Found)) / float64(len(unique)) * 100))
	}

	switch {
	case result.Score >= 80:
		result.Feedback = "Excellent recall! You remembered most key concepts."
	case result.Score >= 60:
		result.Feedback = "Good job! Some concepts need review."
	case result.Score >= 40:
		result.Feedback = "Fair recall. Consider reviewing your notes more thoroughly."
	default:
		result.Feedback = "Needs improvement. Try using active recall techniques."
	}
	return result
}
