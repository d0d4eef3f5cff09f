package route

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/features/children/roster/model"
	helperOSS "preschool_backend/internals/helpers/oss"
	"preschool_backend/internals/testutil"
)

func setupChildApp(t *testing.T, role string, blob helperOSS.BlobService) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &model.ChildModel{})
	uid := uuid.New()

	app := fiber.New()
	ChildAdminRoutes(app.Group("/api/a", testutil.FakeAuth(uid, role)), db, blob)
	ChildKioskRoutes(app.Group("/api/k"), db)
	return app, db, uid
}

func TestBulkUpsertAcceptsArrayAndObject(t *testing.T) {
	app, _, uid := setupChildApp(t, "teacher", nil)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", []map[string]any{
		{"child_seq": 1, "name": "An", "gender": "Nam", "class_name": "Mầm 1"},
		{"child_seq": 2, "name": "Bình", "gender": "Nữ", "class_name": "Mầm 1"},
	}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var saved []dto.ChildResponse
	env.DecodeData(t, &saved)
	require.Len(t, saved, 2)
	assert.Equal(t, "male", saved[0].Gender)
	require.NotNil(t, saved[0].UserID)
	assert.Equal(t, uid, *saved[0].UserID)

	status, env = testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", map[string]any{
		"children": []map[string]any{{"child_seq": 1, "name": "An Nhiên"}},
	}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/a/children", nil, nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []dto.ChildResponse
	env.DecodeData(t, &list)
	assert.Len(t, list, 2)
}

func TestBulkUpsertRejectsBadRows(t *testing.T) {
	app, _, _ := setupChildApp(t, "admin", nil)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", []map[string]any{
		{"child_seq": 0, "name": ""},
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, env.Errors)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", []map[string]any{
		{"child_seq": 5, "name": "A"}, {"child_seq": 5, "name": "B"},
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", "{oops", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestImportExcelAndExportZip(t *testing.T) {
	app, _, _ := setupChildApp(t, "admin", nil)

	status, env := testutil.DoJSON(t, app, http.MethodGet, "/api/a/children/qr/export", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status, env.Message)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"seq", "name", "gender", "age", "dob", "class"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{10, "Hà My", "F", 4, "2021-01-09", "Lá 1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{11, "Gia Huy", "M", "", "", "Lá 1"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/a/children/import", "file", "roster.xlsx", buf.Bytes(), nil)
	status, env = testutil.Do(t, app, req)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/a/children/qr/export", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(body[:2]))

	req = testutil.MultipartRequest(t, http.MethodPost, "/api/a/children/import", "file", "roster.csv", []byte("a,b"), nil)
	status, _ = testutil.Do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestTeacherCannotSeeOthersChildren(t *testing.T) {
	app, db, _ := setupChildApp(t, "teacher", nil)
	other := uuid.New()
	require.NoError(t, db.Create(&model.ChildModel{ChildSeq: 9, Name: "Khác", UserID: &other}).Error)

	var row model.ChildModel
	require.NoError(t, db.Where("child_seq = ?", 9).Take(&row).Error)

	status, _ := testutil.DoJSON(t, app, http.MethodGet, "/api/a/children/"+itoa(row.ID), nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodDelete, "/api/a/children/"+itoa(row.ID), nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/a/children/abc", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// bulk upsert tidak boleh mengambil alih child_seq milik guru lain
	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", []map[string]any{
		{"child_seq": 9, "name": "Overwritten"},
	}, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	require.NoError(t, db.Where("child_seq = ?", 9).Take(&row).Error)
	assert.Equal(t, "Khác", row.Name)
	require.NotNil(t, row.UserID)
	assert.Equal(t, other, *row.UserID)
}

func TestAvatarUploadAndKioskLookup(t *testing.T) {
	var deleted []string
	blob := &helperOSS.MockBlobService{
		UploadImageFn: func(_ context.Context, _ uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
			return "https://cdn.test/" + slot + "/" + fh.Filename, nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			deleted = append(deleted, url)
			return nil
		},
	}
	app, _, _ := setupChildApp(t, "admin", blob)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/api/a/children/bulk", []map[string]any{
		{"child_seq": 21, "name": "Minh Khang", "class_name": "Chồi 1", "phone": "0909"},
	}, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var saved []dto.ChildResponse
	env.DecodeData(t, &saved)
	id := itoa(saved[0].ID)

	for _, name := range []string{"a.png", "b.png"} {
		req := testutil.MultipartRequest(t, http.MethodPost, "/api/a/children/"+id+"/avatar", "image", name, []byte("img"), nil)
		status, env = testutil.Do(t, app, req)
		require.Equal(t, fiber.StatusOK, status, env.Message)
	}
	var child dto.ChildResponse
	env.DecodeData(t, &child)
	require.NotNil(t, child.AvatarURL)
	assert.Equal(t, "https://cdn.test/avatars/b.png", *child.AvatarURL)
	assert.Equal(t, []string{"https://cdn.test/avatars/a.png"}, deleted)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/k/children/lookup?code=21%7CMinh%20Khang%7C%7C%7CCh%E1%BB%93i%201", nil, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var kiosk map[string]any
	env.DecodeData(t, &kiosk)
	assert.Equal(t, "Minh Khang", kiosk["name"])
	assert.NotContains(t, kiosk, "phone")

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/k/children/lookup?code=", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
