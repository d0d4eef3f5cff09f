package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosterModel "preschool_backend/internals/features/children/roster/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
	"preschool_backend/internals/features/emotions/logs/dto"
	"preschool_backend/internals/features/emotions/logs/model"
	"preschool_backend/internals/testutil"
)

func setupLogApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &rosterModel.ChildModel{}, &catalogModel.EmotionModel{}, &model.EmotionLogModel{})
	require.NoError(t, db.Create(&rosterModel.ChildModel{ID: 1, ChildSeq: 1, Name: "An", ClassName: "Mầm 1"}).Error)
	require.NoError(t, db.Create(&[]catalogModel.EmotionModel{
		{Label: "Happy", ImageURL: "/uploads/happy.png"},
		{Label: "Sad", ImageURL: "/uploads/sad.png"},
	}).Error)

	app := fiber.New()
	EmotionLogKioskRoutes(app.Group("/api/k"), db)
	EmotionLogAdminRoutes(app.Group("/api/a", testutil.FakeAuth(uuid.New(), "teacher")), db)
	return app
}

func TestEmotionLogScenario(t *testing.T) {
	app := setupLogApp(t)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs",
		map[string]any{"child_id": 1, "emotion": "Happy", "date": "2024-01-01"}, nil)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var rows []dto.EmotionLogResponse
	env.DecodeData(t, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "morning", rows[0].Session)
	assert.Equal(t, "2024-01-01", rows[0].Date)

	status, env = testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs",
		map[string]any{"logs": []map[string]any{{"child_id": 1, "emotion_label": "Sad", "date": "2024-01-01"}}}, nil)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	env.DecodeData(t, &rows)
	assert.Equal(t, "afternoon", rows[0].Session)
	assert.Equal(t, "Sad", rows[0].EmotionLabel)

	status, env = testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs",
		[]map[string]any{{"child_id": 1, "emotion": "Happy", "date": "2024-01-01"}}, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/k/emotion-logs/today?child_id=1&date=2024-01-01", nil, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var st dto.DayStateResponse
	env.DecodeData(t, &st)
	assert.Equal(t, "afternoon", st.State)
	assert.Equal(t, 2, st.Count)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/a/emotion-logs?date=2024-01-01", nil, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	env.DecodeData(t, &rows)
	assert.Len(t, rows, 2)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/a/emotion-logs/summary?date=2024-01-01", nil, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var sum dto.SummaryResponse
	env.DecodeData(t, &sum)
	assert.Equal(t, int64(1), sum.Children)
}

func TestEmotionLogValidation(t *testing.T) {
	app := setupLogApp(t)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs", map[string]any{"child_id": 1}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.NotEmpty(t, env.Errors)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs",
		map[string]any{"child_id": 1, "emotion": "Happy", "date": "01/01/2024"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs",
		map[string]any{"child_id": 1, "emotion": "Bored", "date": "2024-01-01"}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/k/emotion-logs", "{}", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/k/emotion-logs/today", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodDelete, "/api/a/emotion-logs/42", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
