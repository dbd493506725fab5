package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizSource = "The mitochondria is the powerhouse of the cell. " +
	"Photosynthesis converts light energy into chemical energy. " +
	"Newton's first law describes inertia in moving bodies. " +
	"Water boils at one hundred degrees celsius at sea level. " +
	"The French Revolution began in the year 1789."

func TestGenerateQuiz_Fill(t *testing.T) {
	questions, err := GenerateQuiz(quizSource, 3, QuestionFill)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for _, q := range questions {
		assert.Equal(t, QuestionFill, q.Type)
		assert.Contains(t, q.Question, "_____")
		assert.NotEmpty(t, q.Answer)

		// The answer slots back into the blank to rebuild the sentence.
		rebuilt := strings.Replace(q.Question, "_____", q.Answer, 1)
		assert.Contains(t, quizSource, rebuilt)

		words := strings.Fields(q.Question)
		assert.NotEqual(t, "_____", words[0], "first word is never blanked")
		assert.NotEqual(t, "_____", words[len(words)-1], "last word is never blanked")
	}
}

func TestGenerateQuiz_TrueFalse(t *testing.T) {
	questions, err := GenerateQuiz(quizSource, 2, QuestionTF)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, QuestionTF, questions[0].Type)
	assert.Equal(t, "The mitochondria is the powerhouse of the cell", questions[0].Question)
	assert.Equal(t, "True", questions[0].Answer)
}

func TestGenerateQuiz_ShortAnswer(t *testing.T) {
	questions, err := GenerateQuiz(quizSource, 1, QuestionShort)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, QuestionShort, q.Type)
	assert.True(t, strings.HasPrefix(q.Question, "Explain: "))
	assert.True(t, strings.HasSuffix(q.Question, "..."))
	assert.Equal(t, "The mitochondria is the powerhouse of the cell", q.Answer)
}

func TestGenerateQuiz_Mixed(t *testing.T) {
	questions, err := GenerateQuiz(quizSource, 5, QuestionMixed)
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Contains(t, []QuestionType{QuestionFill, QuestionTF, QuestionShort}, q.Type)
	}
}

func TestGenerateQuiz_CountCappedBySentences(t *testing.T) {
	questions, err := GenerateQuiz("Only one usable sentence here.", 10, QuestionTF)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerateQuiz_ShortSentencesSkipped(t *testing.T) {
	_, err := GenerateQuiz("Too short. Tiny. No.", 5, QuestionTF)
	require.Error(t, err)
}

func TestGenerateQuiz_ShortSentenceFallsThroughToShortAnswer(t *testing.T) {
	// Four words: too few to blank one out safely.
	questions, err := GenerateQuiz("Forces cause observable acceleration.", 1, QuestionFill)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, QuestionShort, questions[0].Type)
}

func TestGenerateQuiz_InvalidType(t *testing.T) {
	_, err := GenerateQuiz(quizSource, 5, QuestionType("essay"))
	require.Error(t, err)
}
