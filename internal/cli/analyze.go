package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/studystream/internal/analysis"
)

// GradeCommand — heuristic writing feedback. Pure text analysis, no
// store involved.
type GradeCommand struct {
	Text    string   `long:"text" description:"Inline text to grade"`
	File    string   `long:"file" description:"Read text from file"`
	Aspects []string `long:"aspect" description:"Grade only these aspects: grammar, structure, clarity, vocabulary (repeatable)"`

	globals *GlobalFlags
}

// BlurtCommand — score a from-memory recall against source notes.
type BlurtCommand struct {
	Notes      string `long:"notes" description:"Inline source notes"`
	NotesFile  string `long:"notes-file" description:"Read source notes from file"`
	Recall     string `long:"recall" description:"Inline recall transcript"`
	RecallFile string `long:"recall-file" description:"Read recall transcript from file"`

	globals *GlobalFlags
}

// QuizCommand — generate practice questions from study material.
type QuizCommand struct {
	Text    string `long:"text" description:"Inline study material"`
	File    string `long:"file" description:"Read study material from file"`
	Count   int    `long:"count" description:"Number of questions" default:"5"`
	Type    string `long:"type" description:"Question type: fill | tf | short | mixed" default:"mixed"`
	Answers bool   `long:"answers" description:"Print answers with the questions"`

	globals *GlobalFlags
}

// Execute implements the go-flags Commander interface for GradeCommand.
func (c *GradeCommand) Execute(args []string) error {
	text, err := readTextInput(c.Text, c.File)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("provide text with --text or --file")
	}

	aspects := make([]analysis.Aspect, 0, len(c.Aspects))
	for _, a := range c.Aspects {
		aspects = append(aspects, analysis.Aspect(a))
	}
	grade := analysis.GradeWriting(text, aspects...)
	if len(grade.Aspects) == 0 {
		return fmt.Errorf("no valid aspects (use grammar, structure, clarity, vocabulary)")
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(grade)
	}

	fmt.Printf("Grade: %s (%.0f%%)\n\n", grade.Grade, grade.Average)
	for _, a := range grade.Aspects {
		fmt.Printf("%-12s %3.0f%%  %s\n", a.Aspect, a.Score, a.Feedback)
	}
	return nil
}

// Execute implements the go-flags Commander interface for BlurtCommand.
func (c *BlurtCommand) Execute(args []string) error {
	notes, err := readTextInput(c.Notes, c.NotesFile)
	if err != nil {
		return err
	}
	recall, err := readTextInput(c.Recall, c.RecallFile)
	if err != nil {
		return err
	}
	if notes == "" || recall == "" {
		return fmt.Errorf("provide both notes (--notes/--notes-file) and a recall transcript (--recall/--recall-file)")
	}

	result := analysis.ScoreRecall(notes, recall)

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Recall score: %d%%\n", result.Score)
	fmt.Println(result.Feedback)
	fmt.Printf("\nFound (%d): %s\n", len(result.Found), orNone(result.Found))
	missing := result.Missing
	if len(missing) > 20 {
		missing = missing[:20]
	}
	fmt.Printf("Missing (%d): %s\n", len(result.Missing), orNone(missing))
	return nil
}

// Execute implements the go-flags Commander interface for QuizCommand.
func (c *QuizCommand) Execute(args []string) error {
	source, err := readTextInput(c.Text, c.File)
	if err != nil {
		return err
	}
	if source == "" {
		return fmt.Errorf("provide study material with --text or --file")
	}

	questions, err := analysis.GenerateQuiz(source, c.Count, analysis.QuestionType(c.Type))
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	}

	labels := map[analysis.QuestionType]string{
		analysis.QuestionFill:  "Fill in the blank",
		analysis.QuestionTF:    "True/False",
		analysis.QuestionShort: "Short answer",
	}
	for i, q := range questions {
		fmt.Printf("Question %d (%s)\n", i+1, labels[q.Type])
		fmt.Printf("  %s\n", q.Question)
		if c.Answers {
			fmt.Printf("  Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}
	return nil
}

func orNone(words []string) string {
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, " ")
}
