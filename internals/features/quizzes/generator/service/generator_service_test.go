package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	"preschool_backend/internals/features/quizzes/generator/dto"
	"preschool_backend/internals/features/quizzes/generator/model"
	questionModel "preschool_backend/internals/features/quizzes/questions/model"
	"preschool_backend/internals/testutil"
)

// fakeLLM mengembalikan respons berurutan dan mencatat prompt yang diterima
type fakeLLM struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, msgs []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	last := msgs[len(msgs)-1]
	if tp, ok := last.Parts[0].(llms.TextContent); ok {
		f.prompts = append(f.prompts, tp.Text)
	}
	if len(f.replies) == 0 {
		return &llms.ContentResponse{}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func setupGenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewSQLiteDB(t,
		&questionModel.QuestionTypeModel{}, &questionModel.QuestionModel{}, &questionModel.AnswerModel{},
		&model.QuestionGenerationModel{})
	require.NoError(t, db.Create(&questionModel.QuestionTypeModel{Name: "Sharing"}).Error)
	return db
}

const twoQuestions = "```json\n{\"questions\": [" +
	"{\"question_text\": \"Bạn muốn mượn bút màu, em nói gì?\", \"emoji\": \"🖍️\", \"explanation\": \"Xin phép lịch sự.\"," +
	" \"answers\": [{\"answer_text\": \"Cho mình mượn nhé?\", \"is_correct\": true}, {\"answer_text\": \"Giật lấy\", \"is_correct\": true}, {\"answer_text\": \"Khóc\", \"is_correct\": false}]}," +
	"{\"question_text\": \"Bạn ngã, em làm gì?\", \"emoji\": \"🤕\", \"explanation\": \"Giúp bạn đứng dậy.\"," +
	" \"answers\": [{\"answer_text\": \"Đỡ bạn dậy\", \"is_correct\": false}, {\"answer_text\": \"Cười\", \"is_correct\": false}]},]}\n```"

func TestClassifyMatchesExistingType(t *testing.T) {
	db := setupGenDB(t)
	llm := &fakeLLM{replies: []string{`{"type_name": "sharing", "is_new": true, "reason": "about toys"}`}}
	g := NewGenerator(db, llm)

	res, err := g.Classify(context.Background(), "Sharing toys with friends")
	require.NoError(t, err)
	require.NotNil(t, res.TypeID)
	assert.Equal(t, "Sharing", res.TypeName)
	assert.False(t, res.IsNew)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- Sharing")
}

func TestGenerateWithNewTypePersistsEverything(t *testing.T) {
	db := setupGenDB(t)
	llm := &fakeLLM{replies: []string{
		`Here: {"type_name": "Kindness", "is_new": true, "reason": "helping others",}`,
		twoQuestions,
	}}
	g := NewGenerator(db, llm)
	user := uuid.New()

	req := dto.GenerateRequest{Topic: "Helping friends", Count: 2, Difficulty: "easy", AnswerCount: 3}
	res, err := g.Generate(context.Background(), req, &user)
	require.NoError(t, err)

	assert.True(t, res.Classification.IsNew)
	require.NotNil(t, res.Classification.TypeID)
	require.Len(t, res.Questions, 2)
	for _, q := range res.Questions {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		assert.Equal(t, 1, correct, q.QuestionText)
		assert.Equal(t, "ai", q.Source)
		assert.Equal(t, *res.Classification.TypeID, q.TypeID)
	}
	// tidak ada yang ditandai benar → jawaban pertama
	assert.True(t, res.Questions[1].Answers[0].IsCorrect)

	var types int64
	db.Model(&questionModel.QuestionTypeModel{}).Count(&types)
	assert.Equal(t, int64(2), types)

	var audit model.QuestionGenerationModel
	require.NoError(t, db.First(&audit, res.GenerationID).Error)
	assert.Equal(t, 2, audit.QuestionCount)
	assert.Equal(t, user, *audit.UserID)
	assert.Contains(t, string(audit.Response), "questions")
}

func TestGenerateWithTypeIDSkipsClassification(t *testing.T) {
	db := setupGenDB(t)
	llm := &fakeLLM{replies: []string{twoQuestions}}
	g := NewGenerator(db, llm)

	typeID := uint(1)
	res, err := g.Generate(context.Background(), dto.GenerateRequest{
		Topic: "Sharing crayons", Count: 1, Difficulty: "medium", AnswerCount: 2, TypeID: &typeID,
	}, nil)
	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	require.Len(t, res.Questions, 1)
	assert.Len(t, res.Questions[0].Answers, 2)
	assert.Equal(t, "medium", res.Questions[0].Difficulty)
}

func TestGenerateFailures(t *testing.T) {
	db := setupGenDB(t)
	typeID := uint(1)
	req := dto.GenerateRequest{Topic: "Sharing", Count: 1, Difficulty: "easy", AnswerCount: 2, TypeID: &typeID}

	code := func(err error) int {
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		return fe.Code
	}

	_, err := NewGenerator(db, nil).Generate(context.Background(), req, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, code(err))

	_, err = NewGenerator(db, &fakeLLM{err: errors.New("timeout")}).Generate(context.Background(), req, nil)
	assert.Equal(t, fiber.StatusBadGateway, code(err))

	_, err = NewGenerator(db, &fakeLLM{replies: []string{"Sorry, I can't."}}).Generate(context.Background(), req, nil)
	assert.Equal(t, fiber.StatusBadGateway, code(err))

	_, err = NewGenerator(db, &fakeLLM{replies: []string{`{"questions": []}`}}).Generate(context.Background(), req, nil)
	assert.Equal(t, fiber.StatusBadGateway, code(err))

	bad := uint(42)
	req.TypeID = &bad
	_, err = NewGenerator(db, &fakeLLM{}).Generate(context.Background(), req, nil)
	assert.Equal(t, fiber.StatusBadRequest, code(err))

	var n int64
	db.Model(&questionModel.QuestionModel{}).Count(&n)
	assert.Equal(t, int64(0), n)
	db.Model(&model.QuestionGenerationModel{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestNormalizeAIQuestions(t *testing.T) {
	in := []dto.AIQuestion{
		{QuestionText: "  ", Answers: []dto.AIAnswer{{AnswerText: "a"}, {AnswerText: "b"}}},
		{QuestionText: "Only one answer?", Answers: []dto.AIAnswer{{AnswerText: "a", IsCorrect: true}}},
		{QuestionText: "Keep me", Answers: []dto.AIAnswer{
			{AnswerText: "a"}, {AnswerText: "b", IsCorrect: true}, {AnswerText: "c", IsCorrect: true}, {AnswerText: "d"},
		}},
	}
	out := NormalizeAIQuestions(in, 7, "hard", 5, 3)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Answers, 3)
	assert.False(t, out[0].Answers[0].IsCorrect)
	assert.True(t, out[0].Answers[1].IsCorrect)
	assert.False(t, out[0].Answers[2].IsCorrect)
	assert.Equal(t, uint(7), out[0].TypeID)
}

func TestGenerateRollsBackWhenAuditEncodingFails(t *testing.T) {
	db := setupGenDB(t)
	orig := encodeAudit
	encodeAudit = func(any) ([]byte, error) { return nil, errors.New("encode failed") }
	t.Cleanup(func() { encodeAudit = orig })

	typeID := uint(1)
	_, err := NewGenerator(db, &fakeLLM{replies: []string{twoQuestions}}).Generate(context.Background(), dto.GenerateRequest{
		Topic: "Sharing", Count: 2, Difficulty: "easy", AnswerCount: 2, TypeID: &typeID,
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode generation request")

	var n int64
	require.NoError(t, db.Model(&questionModel.QuestionModel{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Model(&model.QuestionGenerationModel{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
