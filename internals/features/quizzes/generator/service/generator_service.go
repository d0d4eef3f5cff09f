package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	"preschool_backend/internals/features/quizzes/generator/dto"
	"preschool_backend/internals/features/quizzes/generator/model"
	questionDto "preschool_backend/internals/features/quizzes/questions/dto"
	questionModel "preschool_backend/internals/features/quizzes/questions/model"
	questionService "preschool_backend/internals/features/quizzes/questions/service"
	helper "preschool_backend/internals/helpers"
)

type Generator struct {
	DB          *gorm.DB
	LLM         llms.Model // nil = fitur AI nonaktif (503)
	ModelName   string
	Temperature float64
}

// encodeAudit: encoder untuk kolom request di audit (diganti di test)
var encodeAudit = sonic.Marshal

func NewGenerator(db *gorm.DB, llm llms.Model) *Generator {
	return &Generator{DB: db, LLM: llm, ModelName: configs.AIModel, Temperature: 0.7}
}

// ask: satu panggilan sinkron, tanpa retry
func (g *Generator) ask(ctx context.Context, prompt string) (string, error) {
	if g.LLM == nil {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "AI generation is not configured")
	}
	messages := []llms.MessageContent{
		{Role: schema.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextPart(systemPrompt)}},
		{Role: schema.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextPart(prompt)}},
	}
	resp, err := g.LLM.GenerateContent(ctx, messages, llms.WithTemperature(g.Temperature))
	if err != nil {
		log.Printf("[ERROR] AI request failed: %v", err)
		return "", fiber.NewError(fiber.StatusBadGateway, "AI service request failed")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fiber.NewError(fiber.StatusBadGateway, "AI service returned an empty response")
	}
	return resp.Choices[0].Content, nil
}

/* =========================================================
   Fase (a): klasifikasi topik
========================================================= */

func (g *Generator) Classify(ctx context.Context, topic string) (dto.ClassifyResult, error) {
	var types []questionModel.QuestionTypeModel
	if err := g.DB.Order("name ASC").Find(&types).Error; err != nil {
		return dto.ClassifyResult{}, err
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}

	text, err := g.ask(ctx, classifyPrompt(topic, names))
	if err != nil {
		return dto.ClassifyResult{}, err
	}
	var ai dto.AIClassification
	if err := ParseAIJSON(text, &ai); err != nil {
		log.Printf("[WARN] AI classification unparseable: %v", err)
		return dto.ClassifyResult{}, fiber.NewError(fiber.StatusBadGateway, "AI classification response could not be parsed")
	}

	res := dto.ClassifyResult{TypeName: strings.TrimSpace(ai.TypeName), Reason: strings.TrimSpace(ai.Reason), IsNew: true}
	if res.TypeName == "" {
		return dto.ClassifyResult{}, fiber.NewError(fiber.StatusBadGateway, "AI classification returned no category")
	}
	// nama yang sudah ada selalu dipakai ulang, apa pun klaim is_new dari model
	for _, t := range types {
		if strings.EqualFold(t.Name, res.TypeName) {
			id := t.ID
			res.TypeID, res.TypeName, res.IsNew = &id, t.Name, false
			break
		}
	}
	return res, nil
}

/* =========================================================
   Fase (b): generate + simpan
========================================================= */

// NormalizeAIQuestions: buang soal kosong, potong ke answerCount,
// paksa tepat satu jawaban benar (yang pertama ditandai menang; tidak ada → jawaban pertama).
// Soal yang tetap tidak lolos validasi dilewati.
func NormalizeAIQuestions(in []dto.AIQuestion, typeID uint, difficulty string, count, answerCount int) []questionDto.QuestionRequest {
	out := make([]questionDto.QuestionRequest, 0, len(in))
	for _, q := range in {
		if len(out) >= count {
			break
		}
		text := strings.TrimSpace(q.QuestionText)
		if text == "" {
			continue
		}
		answers := make([]questionDto.AnswerInput, 0, answerCount)
		for _, a := range q.Answers {
			if t := strings.TrimSpace(a.AnswerText); t != "" && len(answers) < answerCount {
				answers = append(answers, questionDto.AnswerInput{AnswerText: t, IsCorrect: a.IsCorrect})
			}
		}
		if len(answers) < 2 {
			continue
		}
		seen := false
		for i := range answers {
			if answers[i].IsCorrect && !seen {
				seen = true
				continue
			}
			answers[i].IsCorrect = false
		}
		if !seen {
			answers[0].IsCorrect = true
		}

		req := questionDto.QuestionRequest{
			QuestionText: text,
			Emoji:        q.Emoji,
			Explanation:  q.Explanation,
			Difficulty:   difficulty,
			TypeID:       typeID,
			Answers:      answers,
		}
		req.Normalize()
		if utf8.RuneCountInString(req.Emoji) > 16 {
			req.Emoji = ""
		}
		if err := helper.Validate.Struct(req); err != nil {
			continue
		}
		out = append(out, req)
	}
	return out
}

func (g *Generator) resolveType(ctx context.Context, req dto.GenerateRequest) (dto.ClassifyResult, error) {
	if req.TypeID == nil {
		return g.Classify(ctx, req.Topic)
	}
	var t questionModel.QuestionTypeModel
	if err := g.DB.First(&t, *req.TypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassifyResult{}, fiber.NewError(fiber.StatusBadRequest, "type_id does not exist")
		}
		return dto.ClassifyResult{}, err
	}
	id := t.ID
	return dto.ClassifyResult{TypeID: &id, TypeName: t.Name, Reason: "type provided by caller"}, nil
}

// findOrCreateType: kategori baru dari AI (nama sama → pakai yang ada)
func findOrCreateType(tx *gorm.DB, name, reason string) (uint, error) {
	var t questionModel.QuestionTypeModel
	err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).Take(&t).Error
	if err == nil {
		return t.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	t = questionModel.QuestionTypeModel{Name: name, Description: reason}
	if err := tx.Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (g *Generator) Generate(ctx context.Context, req dto.GenerateRequest, userID *uuid.UUID) (dto.GenerateResponse, error) {
	cls, err := g.resolveType(ctx, req)
	if err != nil {
		return dto.GenerateResponse{}, err
	}

	text, err := g.ask(ctx, generatePrompt(req.Topic, cls.TypeName, req.Difficulty, req.Count, req.AnswerCount))
	if err != nil {
		return dto.GenerateResponse{}, err
	}
	var set dto.AIQuestionSet
	if err := ParseAIJSON(text, &set); err != nil {
		log.Printf("[WARN] AI questions unparseable: %v", err)
		return dto.GenerateResponse{}, fiber.NewError(fiber.StatusBadGateway, "AI question response could not be parsed")
	}

	resp := dto.GenerateResponse{Classification: cls}
	err = g.DB.Transaction(func(tx *gorm.DB) error {
		typeID := uint(0)
		if cls.TypeID != nil {
			typeID = *cls.TypeID
		} else {
			id, err := findOrCreateType(tx, cls.TypeName, cls.Reason)
			if err != nil {
				return err
			}
			typeID = id
			resp.Classification.TypeID = &id
		}

		items := NormalizeAIQuestions(set.Questions, typeID, req.Difficulty, req.Count, req.AnswerCount)
		if len(items) == 0 {
			return fiber.NewError(fiber.StatusBadGateway, "AI returned no usable questions")
		}
		for _, it := range items {
			q, err := questionService.CreateQuestionTx(tx, it, userID, questionModel.SourceAI)
			if err != nil {
				return err
			}
			resp.Questions = append(resp.Questions, questionDto.FromModel(*q))
		}

		reqJSON, err := encodeAudit(req)
		if err != nil {
			return fmt.Errorf("encode generation request: %w", err)
		}
		audit := model.QuestionGenerationModel{
			UserID:        userID,
			Topic:         req.Topic,
			TypeID:        &typeID,
			Model:         g.ModelName,
			Request:       datatypes.JSON(reqJSON),
			Response:      datatypes.JSON(rawOrQuoted(text)),
			QuestionCount: len(items),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		resp.GenerationID = audit.ID
		return nil
	})
	if err != nil {
		return dto.GenerateResponse{}, err
	}
	log.Printf("[INFO] AI generated %d questions (topic=%q type=%s)", len(resp.Questions), req.Topic, resp.Classification.TypeName)
	return resp, nil
}

// rawOrQuoted: simpan JSON hasil ekstraksi; kalau tidak valid simpan sebagai string JSON
func rawOrQuoted(text string) []byte {
	if s := stripTrailingCommas(ExtractJSON(text)); s != "" && sonic.Valid([]byte(s)) {
		return []byte(s)
	}
	b, err := sonic.Marshal(text)
	if err != nil {
		return []byte(fmt.Sprintf("%q", text))
	}
	return b
}

// ListGenerations: riwayat audit (terbaru dulu)
func ListGenerations(db *gorm.DB, userID *uuid.UUID, offset, limit int) ([]model.QuestionGenerationModel, int64, error) {
	q := db.Model(&model.QuestionGenerationModel{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.QuestionGenerationModel
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
