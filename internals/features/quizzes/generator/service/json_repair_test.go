package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preschool_backend/internals/features/quizzes/generator/dto"
)

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSON("Here you go:\n```json\n{\"a\":1}\n```\nThanks!"))
	assert.Equal(t, `{"a":{"b":2}}`, ExtractJSON(`noise {"a":{"b":2}} trailing`))
	assert.Equal(t, `[1,2]`, ExtractJSON(`list: [1,2] done`))
	assert.Equal(t, "", ExtractJSON("no json here"))
}

func TestParseAIJSONTrailingCommas(t *testing.T) {
	var out dto.AIClassification
	err := ParseAIJSON("Sure!\n{\"type_name\": \"Sharing\", \"is_new\": false, \"reason\": \"fits\",}\n", &out)
	require.NoError(t, err)
	assert.Equal(t, "Sharing", out.TypeName)
	assert.Equal(t, "fits", out.Reason)
}

func TestParseAIJSONTruncatedRecovery(t *testing.T) {
	text := "```json\n{\"questions\": [" +
		"{\"question_text\": \"Q1\", \"answers\": [{\"answer_text\": \"A\", \"is_correct\": true}, {\"answer_text\": \"B\", \"is_correct\": false}]}," +
		"{\"question_text\": \"Q2\", \"answers\": [{\"answer_text\": \"C\", \"is_corr"

	var out dto.AIQuestionSet
	require.NoError(t, ParseAIJSON(text, &out))
	require.NotEmpty(t, out.Questions)
	assert.Equal(t, "Q1", out.Questions[0].QuestionText)
	assert.Len(t, out.Questions[0].Answers, 2)
}

func TestParseAIJSONFailure(t *testing.T) {
	var out dto.AIQuestionSet
	assert.ErrorIs(t, ParseAIJSON("I cannot help with that.", &out), ErrNoJSON)
	assert.Error(t, ParseAIJSON(`{"questions": "oops" "x"}`, &out))
}

func TestCloseOpenBrackets(t *testing.T) {
	assert.Equal(t, `{"a":[1,{"b":"x}"}]}`, closeOpenBrackets(`{"a":[1,{"b":"x}"`))
	assert.Equal(t, `{"s":"abc"}`, closeOpenBrackets(`{"s":"abc`))
}
