package service

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write short, kind quiz questions about good behavior for preschool children (3-6 years old).
Use simple words, one idea per question, and a friendly tone. Always reply with a single JSON object and nothing else.`

func classifyPrompt(topic string, typeNames []string) string {
	existing := "(none yet)"
	if len(typeNames) > 0 {
		existing = "- " + strings.Join(typeNames, "\n- ")
	}
	return fmt.Sprintf(`Classify this behavior topic into one of the existing question categories.
If none fits well, propose a short new category name (2-4 words).

Topic: %q

Existing categories:
%s

Reply as JSON:
{"type_name": "<existing or new category>", "is_new": <true|false>, "reason": "<one sentence>"}`, topic, existing)
}

func generatePrompt(topic, typeName, difficulty string, count, answerCount int) string {
	return fmt.Sprintf(`Create %d multiple-choice questions.
Topic: %q
Category: %q
Difficulty: %s
Each question must have exactly %d answers and exactly one correct answer.
Add one fitting emoji and a one-sentence explanation a teacher can read aloud.

Reply as JSON:
{"questions": [{"question_text": "...", "emoji": "...", "explanation": "...",
  "answers": [{"answer_text": "...", "is_correct": true}, {"answer_text": "...", "is_correct": false}]}]}`,
		count, topic, typeName, difficulty, answerCount)
}
