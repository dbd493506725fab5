package analysis

import (
	"fmt"
	"math/rand"
	"strings"
)

// QuestionType selects how a sentence becomes a question.
type QuestionType string

const (
	QuestionFill  QuestionType = "fill"
	QuestionTF    QuestionType = "tf"
	QuestionShort QuestionType = "short"
	QuestionMixed QuestionType = "mixed" // pick randomly per question
)

// ValidQuestionType reports whether qt names a question type.
func ValidQuestionType(qt QuestionType) bool {
	switch qt {
	case QuestionFill, QuestionTF, QuestionShort, QuestionMixed:
		return true
	}
	return false
}

// Question is one generated practice question with its answer.
type Question struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
}

var mixedTypes = []QuestionType{QuestionFill, QuestionTF, QuestionShort}

// GenerateQuiz builds up to count questions from the source material.
// Each question comes from one sentence (sentences of 10 characters or
// fewer are skipped as too thin to ask about):
//   - fill: a random interior word is blanked out; sentences of four
//     words or fewer fall through to short-answer,
//   - tf: the sentence is presented as a true statement,
//   - short: "Explain:" plus the sentence's first 50 characters.
func GenerateQuiz(source string, count int, qt QuestionType) ([]Question, error) {
	if !ValidQuestionType(qt) {
		return nil, fmt.Errorf("unknown question type %q (use fill, tf, short, or mixed)", qt)
	}
	if count <= 0 {
		count = 5
	}

	var sentences []string
	for _, s := range sentenceSplit.Split(source, -1) {
		if s = strings.TrimSpace(s); len(s) > 10 {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("not enough material to generate questions")
	}
	if count > len(sentences) {
		count = len(sentences)
	}

	questions := make([]Question, 0, count)
	for _, sentence := range sentences[:count] {
		questionType := qt
		if qt == QuestionMixed {
			questionType = mixedTypes[rand.Intn(len(mixedTypes))]
		}

		words := strings.Fields(sentence)
		switch {
		case questionType == QuestionFill && len(words) > 4:
			// Blank an interior word, never the first or last.
			idx := rand.Intn(len(words)-2) + 1
			answer := words[idx]
			blanked := make([]string, len(words))
			copy(blanked, words)
			blanked[idx] = "_____"
			questions = append(questions, Question{
				Type:     QuestionFill,
				Question: strings.Join(blanked, " "),
				Answer:   answer,
			})
		case questionType == QuestionTF:
			questions = append(questions, Question{
				Type:     QuestionTF,
				Question: sentence,
				Answer:   "True",
			})
		default:
			prompt := sentence
			if len(prompt) > 50 {
				prompt = prompt[:50]
			}
			questions = append(questions, Question{
				Type:     QuestionShort,
				Question: "Explain: " + prompt + "...",
				Answer:   sentence,
			})
		}
	}
	return questions, nil
}
