package analysis

import (
	"regexp"
	"strings"
)

// Aspect is one dimension of the writing grade.
type Aspect string

const (
	AspectGrammar    Aspect = "grammar"
	AspectStructure  Aspect = "structure"
	AspectClarity    Aspect = "clarity"
	AspectVocabulary Aspect = "vocabulary"
)

// Aspects lists the dimensions in display order.
var Aspects = []Aspect{AspectGrammar, AspectStructure, AspectClarity, AspectVocabulary}

// AspectScore is one graded dimension.
type AspectScore struct {
	Aspect   Aspect  `json:"aspect"`
	Score    float64 `json:"score"` // 0-100
	Feedback string  `json:"feedback"`
}

// WritingGrade is the full grading report.
type WritingGrade struct {
	Grade   string        `json:"grade"` // A-F
	Average float64       `json:"average"`
	Aspects []AspectScore `json:"aspects"`
}

var (
	grammarPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bi\s`),       // lowercase standalone "i"
		regexp.MustCompile(`\s\s+`),       // doubled whitespace
		regexp.MustCompile(`[.!?][a-z]`),  // no space after sentence end
		regexp.MustCompile(`,\s*,`),       // doubled comma
	}
	paragraphSplit = regexp.MustCompile(`\n\n+`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	wordPattern    = regexp.MustCompile(`\b[a-z]+\b`)
)

// gradeGrammar starts at 100 and deducts two points per pattern hit.
func gradeGrammar(text string) float64 {
	score := 100.0
	for _, p := range grammarPatterns {
		score -= float64(len(p.FindAllString(text, -1))) * 2
	}
	if score < 0 {
		return 0
	}
	return score
}

// gradeStructure rewards paragraph count, sentence count, and
// transition words.
func gradeStructure(text string) float64 {
	score := 50.0
	paragraphs := 0
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs >= 3 {
		score += 20
	}
	if paragraphs >= 5 {
		score += 10
	}
	if len(sentences(text)) >= 5 {
		score += 10
	}
	if strings.Contains(text, "however") || strings.Contains(text, "therefore") || strings.Contains(text, "furthermore") {
		score += 10
	}
	if score > 100 {
		return 100
	}
	return score
}

// gradeClarity maps average sentence length to a banded score; shorter
// sentences read clearer.
func gradeClarity(text string) float64 {
	ss := sentences(text)
	if len(ss) == 0 {
		return 50
	}
	total := 0
	for _, s := range ss {
		total += len(strings.Split(s, " "))
	}
	avg := float64(total) / float64(len(ss))
	switch {
	case avg < 15:
		return 90
	case avg < 20:
		return 80
	case avg < 25:
		return 70
	case avg < 30:
		return 60
	}
	return 50
}

// gradeVocabulary scores the unique-to-total word ratio, scaled so a
// ratio of 2/3 already earns full marks.
func gradeVocabulary(text string) float64 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 0
	}
	unique := map[string]bool{}
	for _, w := range words {
		unique[w] = true
	}
	score := float64(len(unique)) / float64(len(words)) * 150
	if score > 100 {
		return 100
	}
	return score
}

func sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func aspectFeedback(aspect Aspect, score float64) string {
	good := score >= 80
	switch aspect {
	case AspectGrammar:
		if good {
			return "Good grammar and spelling."
		}
		return "Some grammar issues detected. Review sentence structure."
	case AspectStructure:
		if good {
			return "Well-organized content."
		}
		return "Consider using more paragraphs and transitions."
	case AspectClarity:
		if good {
			return "Clear and readable."
		}
		return "Sentences may be too long or complex. Try simplifying."
	case AspectVocabulary:
		if good {
			return "Good vocabulary variety."
		}
		return "Consider using more varied vocabulary."
	}
	return ""
}

// LetterGrade maps a 0-100 score to A-F.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}

// GradeWriting scores text on the requested aspects and averages them
// into a letter grade. With no aspects given, all four are graded.
func GradeWriting(text string, aspects ...Aspect) WritingGrade {
	if len(aspects) == 0 {
		aspects = Aspects
	}
	grade := WritingGrade{}
	total := 0.0
	for _, a := range aspects {
		var score float64
		switch a {
		case AspectGrammar:
			score = gradeGrammar(text)
		case AspectStructure:
			score = gradeStructure(text)
		case AspectClarity:
			score = gradeClarity(text)
		case AspectVocabulary:
			score = gradeVocabulary(text)
		default:
			continue
		}
		total += score
		grade.Aspects = append(grade.Aspects, AspectScore{
			Aspect:   a,
			Score:    score,
			Feedback: aspectFeedback(a, score),
		})
	}
	if len(grade.Aspects) > 0 {
		grade.Average = total / float64(len(grade.Aspects))
	}
	grade.Grade = LetterGrade(grade.Average)
	return grade
}
