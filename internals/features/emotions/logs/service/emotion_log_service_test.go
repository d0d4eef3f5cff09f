package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	rosterModel "preschool_backend/internals/features/children/roster/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
	"preschool_backend/internals/features/emotions/logs/dto"
	"preschool_backend/internals/features/emotions/logs/model"
	"preschool_backend/internals/helpers/dbtime"
	"preschool_backend/internals/testutil"
)

func setupLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &rosterModel.ChildModel{}, &catalogModel.EmotionModel{}, &model.EmotionLogModel{})
	require.NoError(t, db.Create(&[]rosterModel.ChildModel{
		{ID: 1, ChildSeq: 1, Name: "An", ClassName: "Mầm 1"},
		{ID: 2, ChildSeq: 2, Name: "Bình", ClassName: "Mầm 2"},
	}).Error)
	require.NoError(t, db.Create(&[]catalogModel.EmotionModel{
		{Label: "Happy", ImageURL: "/uploads/happy.png", Color: "#FFD700"},
		{Label: "Sad", ImageURL: "/uploads/sad.png", Color: "#1E90FF"},
	}).Error)
	return db
}

func one(childID uint, label, date string) dto.SubmitRequest {
	req := dto.SubmitRequest{Logs: []dto.LogItem{{ChildID: childID, EmotionLabel: label, Date: date}}}
	req.Normalize()
	return req
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func countLogs(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&model.EmotionLogModel{}).Count(&n).Error)
	return n
}

func TestSubmitAssignsSessionsBySubmissionOrder(t *testing.T) {
	db := setupLogDB(t)

	rows, labels, err := Submit(db, one(1, "Happy", "2024-01-01"), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "morning", rows[0].Session)
	assert.Equal(t, "Happy", labels[rows[0].EmotionID])
	assert.Equal(t, "An", rows[0].ChildName)
	assert.Equal(t, "Mầm 1", rows[0].ClassName)

	rows, _, err = Submit(db, one(1, "sad", "2024-01-01"), nil)
	require.NoError(t, err)
	assert.Equal(t, "afternoon", rows[0].Session)

	_, _, err = Submit(db, one(1, "Happy", "2024-01-01"), nil)
	assert.Equal(t, fiber.StatusConflict, errCode(t, err))
	assert.Equal(t, int64(2), countLogs(t, db))

	// hari lain mulai lagi dari pagi
	rows, _, err = Submit(db, one(1, "Happy", "2024-01-02"), nil)
	require.NoError(t, err)
	assert.Equal(t, "morning", rows[0].Session)
}

func TestSubmitUnknownLabelRollsBackBatch(t *testing.T) {
	db := setupLogDB(t)

	req := dto.SubmitRequest{Logs: []dto.LogItem{
		{ChildID: 1, EmotionLabel: "Happy", Date: "2024-02-01"},
		{ChildID: 2, EmotionLabel: "Angry", Date: "2024-02-01"},
	}}
	req.Normalize()

	_, _, err := Submit(db, req, nil)
	assert.Equal(t, fiber.StatusNotFound, errCode(t, err))
	assert.Equal(t, int64(0), countLogs(t, db))
}

func TestSubmitBatchSameChildTwice(t *testing.T) {
	db := setupLogDB(t)
	recorder := uuid.New()

	req := dto.SubmitRequest{Logs: []dto.LogItem{
		{ChildID: 2, EmotionLabel: "Happy", Date: "2024-03-01"},
		{ChildID: 2, EmotionLabel: "Sad", Date: "2024-03-01", ChildName: "Bình (snapshot)"},
	}}
	req.Normalize()

	rows, _, err := Submit(db, req, &recorder)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "morning", rows[0].Session)
	assert.Equal(t, "afternoon", rows[1].Session)
	assert.Equal(t, "Bình (snapshot)", rows[1].ChildName)
	require.NotNil(t, rows[0].RecordedBy)
	assert.Equal(t, recorder, *rows[0].RecordedBy)

	// batch berisi tiga item untuk anak yang sama → seluruh batch gagal
	req.Logs = append(req.Logs, dto.LogItem{ChildID: 1, EmotionLabel: "Happy", Date: "2024-03-02"})
	req.Logs[0].Date, req.Logs[1].Date = "2024-03-02", "2024-03-02"
	req.Logs = append(req.Logs, dto.LogItem{ChildID: 2, EmotionLabel: "Happy", Date: "2024-03-02"})
	_, _, err = Submit(db, req, nil)
	assert.Equal(t, fiber.StatusConflict, errCode(t, err))
	assert.Equal(t, int64(2), countLogs(t, db))
}

func TestSubmitUnknownChild(t *testing.T) {
	db := setupLogDB(t)
	_, _, err := Submit(db, one(99, "Happy", "2024-01-01"), nil)
	assert.Equal(t, fiber.StatusNotFound, errCode(t, err))
}

func TestSubmitAfterDeleteFollowsDailyCount(t *testing.T) {
	db := setupLogDB(t)
	first, _, err := Submit(db, one(1, "Happy", "2024-04-01"), nil)
	require.NoError(t, err)
	_, _, err = Submit(db, one(1, "Sad", "2024-04-01"), nil)
	require.NoError(t, err)

	require.NoError(t, Delete(db, first[0].ID))
	assert.Equal(t, fiber.StatusNotFound, errCode(t, Delete(db, first[0].ID)))

	// tersisa 1 log (afternoon) → log berikutnya juga "afternoon" → bentrok 409
	_, _, err = Submit(db, one(1, "Happy", "2024-04-01"), nil)
	assert.Equal(t, fiber.StatusConflict, errCode(t, err))

	var n int64
	require.NoError(t, db.Model(&model.EmotionLogModel{}).Where("child_id = ?", 1).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	st, err := DayState(db, 1, first[0].LogDate)
	require.NoError(t, err)
	assert.Equal(t, "afternoon", st.State)
	require.NotNil(t, st.NextSession)
	assert.Equal(t, "afternoon", *st.NextSession)
}

func TestDayStateAndSummary(t *testing.T) {
	db := setupLogDB(t)
	day, err := dbtime.ParseDate("2024-05-10")
	require.NoError(t, err)

	st, err := DayState(db, 1, day)
	require.NoError(t, err)
	assert.Equal(t, "none", st.State)
	require.NotNil(t, st.NextSession)
	assert.Equal(t, "morning", *st.NextSession)

	_, _, err = Submit(db, one(1, "Happy", "2024-05-10"), nil)
	require.NoError(t, err)
	_, _, err = Submit(db, one(2, "Happy", "2024-05-10"), nil)
	require.NoError(t, err)
	_, _, err = Submit(db, one(1, "Sad", "2024-05-10"), nil)
	require.NoError(t, err)

	st, err = DayState(db, 1, day)
	require.NoError(t, err)
	assert.Equal(t, "afternoon", st.State)
	assert.Nil(t, st.NextSession)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, "Happy", st.Logs[0].EmotionLabel)

	sum, err := Summary(db, day, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Children)
	require.Len(t, sum.Emotions, 2)
	assert.Equal(t, "Happy", sum.Emotions[0].Label)
	assert.Equal(t, int64(2), sum.Emotions[0].Morning)
	assert.Equal(t, int64(0), sum.Emotions[0].Afternoon)
	assert.Equal(t, int64(1), sum.Emotions[1].Afternoon)

	sum, err = Summary(db, day, "Mầm 2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Children)
	assert.Equal(t, int64(1), sum.Emotions[0].Total)

	rows, total, labels, err := List(db, ListFilter{Date: &day, ChildID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
	assert.Len(t, labels, 2)
}
