package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/features/children/roster/model"
	helperOSS "preschool_backend/internals/helpers/oss"
	"preschool_backend/internals/testutil"
)

func newRosterDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t, &model.ChildModel{})
}

func sampleRows() []dto.ChildUpsertRequest {
	return []dto.ChildUpsertRequest{
		{ChildSeq: 1, Name: "Nguyễn An", Gender: "male", DateOfBirth: "2020-03-15", ClassName: "Mầm 1"},
		{ChildSeq: 2, Name: "Trần Bình", Gender: "female", ClassName: "Mầm 1"},
		{ChildSeq: 3, Name: "Lê Chi", Gender: "female", ClassName: "Chồi 2"},
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestBulkUpsertIsIdempotentOnSeq(t *testing.T) {
	db := newRosterDB(t)

	first, err := BulkUpsert(db, sampleRows(), nil, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for _, c := range first {
		require.NotNil(t, c.QRCode)
		assert.Contains(t, *c.QRCode, "data:image/png;base64,")
	}
	require.NotNil(t, first[0].Age, "age derived from date_of_birth")

	rows := sampleRows()
	rows[1].Name = "Trần Bình Minh"
	second, err := BulkUpsert(db, rows, nil, nil)
	require.NoError(t, err)
	require.Len(t, second, 3)

	var n int64
	db.Model(&model.ChildModel{}).Count(&n)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.Equal(t, "Trần Bình Minh", second[1].Name)
	assert.NotEqual(t, *first[1].QRCode, *second[1].QRCode)
}

func TestBulkUpsertRevivesSoftDeleted(t *testing.T) {
	db := newRosterDB(t)
	rows, err := BulkUpsert(db, sampleRows()[:1], nil, nil)
	require.NoError(t, err)

	require.NoError(t, DeleteChild(db, rows[0].ID, nil))
	_, err = GetChild(db, rows[0].ID, nil)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	again, err := BulkUpsert(db, sampleRows()[:1], nil, nil)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, rows[0].ID, again[0].ID)
}

func TestOwnerScope(t *testing.T) {
	db := newRosterDB(t)
	teacherA, teacherB := uuid.New(), uuid.New()

	_, err := BulkUpsert(db, sampleRows()[:2], &teacherA, &teacherA)
	require.NoError(t, err)
	_, err = BulkUpsert(db, sampleRows()[2:], &teacherB, &teacherB)
	require.NoError(t, err)

	list, total, err := ListChildren(db, ListFilter{Owner: &teacherA})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	_, total, err = ListChildren(db, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, total, err = ListChildren(db, ListFilter{ClassName: "Chồi 2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	classes, err := ListClasses(db, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Mầm 1", "Chồi 2"}, classes)
}

func TestUpdateChildSeqConflict(t *testing.T) {
	db := newRosterDB(t)
	rows, err := BulkUpsert(db, sampleRows(), nil, nil)
	require.NoError(t, err)

	seq := 2
	_, err = UpdateChild(db, rows[0].ID, nil, dto.UpdateChildRequest{ChildSeq: &seq})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	name := "An Nhiên"
	m, err := UpdateChild(db, rows[0].ID, nil, dto.UpdateChildRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "An Nhiên", m.Name)
	png, err := DecodeQRDataURL(*m.QRCode)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestFindByCode(t *testing.T) {
	db := newRosterDB(t)
	rows, err := BulkUpsert(db, sampleRows(), nil, nil)
	require.NoError(t, err)

	m, err := FindByCode(db, IdentityString(rows[2]))
	require.NoError(t, err)
	assert.Equal(t, rows[2].ID, m.ID)

	m, err = FindByCode(db, "2")
	require.NoError(t, err)
	assert.Equal(t, "Trần Bình", m.Name)

	_, err = FindByCode(db, "99|Ghost")
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	_, err = FindByCode(db, "not-a-code")
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestExportQRZip(t *testing.T) {
	db := newRosterDB(t)

	_, _, err := ExportQRZip(db, nil, "")
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	rows := sampleRows()
	rows = append(rows, dto.ChildUpsertRequest{ChildSeq: 4, Name: "Lê Chi", ClassName: "Chồi 2"})
	_, err = BulkUpsert(db, rows, nil, nil)
	require.NoError(t, err)

	// satu baris dengan data QR rusak tetap ikut (encode ulang)
	require.NoError(t, db.Model(&model.ChildModel{}).Where("child_seq = ?", 4).
		Update("qr_code", "data:image/png;base64,@@@").Error)

	data, n, err := ExportQRZip(db, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 4)

	names := map[string]bool{}
	for _, f := range zr.File {
		assert.False(t, names[f.Name], "duplicate entry %s", f.Name)
		names[f.Name] = true
		assert.Regexp(t, `^QR_be_\d+_[a-z0-9_]+\.png$`, f.Name)
	}
	assert.True(t, names["QR_be_1_nguyen_an.png"])

	_, n, err = ExportQRZip(db, nil, "Chồi 2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestZipEntryNameDeduplicates(t *testing.T) {
	used := map[string]int{}
	assert.Equal(t, "QR_be_7_bao_ngoc.png", ZipEntryName(7, "Bảo Ngọc", used))
	assert.Equal(t, "QR_be_7_bao_ngoc_2.png", ZipEntryName(7, "Bảo  Ngọc", used))
	assert.Equal(t, "QR_be_8_item.png", ZipEntryName(8, "???", used))
}

func TestBulkUpsertKeepsOwnerOfExistingSeq(t *testing.T) {
	db := newRosterDB(t)
	teacherA, teacherB, admin := uuid.New(), uuid.New(), uuid.New()

	rows := sampleRows()[:1]
	_, err := BulkUpsert(db, rows, &teacherA, &teacherA)
	require.NoError(t, err)

	// guru lain tidak boleh menimpa child_seq milik guru A
	takeover := sampleRows()[:1]
	takeover[0].Name = "Overwritten"
	_, err = BulkUpsert(db, takeover, &teacherB, &teacherB)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	list, _, err := ListChildren(db, ListFilter{Owner: &teacherA})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Nguyễn An", list[0].Name)

	// admin boleh update data, tapi pemilik tetap guru A
	edit := sampleRows()[:1]
	edit[0].Name = "Nguyễn An Updated"
	_, err = BulkUpsert(db, edit, &admin, nil)
	require.NoError(t, err)

	child, err := GetChild(db, list[0].ID, &teacherA)
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn An Updated", child.Name)
	require.NotNil(t, child.UserID)
	assert.Equal(t, teacherA, *child.UserID)

	// pemilik sendiri tetap bisa re-upsert (idempotent)
	_, err = BulkUpsert(db, sampleRows()[:1], &teacherA, &teacherA)
	require.NoError(t, err)
}

func TestSetAvatarDeletesPreviousFile(t *testing.T) {
	db := newRosterDB(t)
	rows, err := BulkUpsert(db, sampleRows()[:1], nil, nil)
	require.NoError(t, err)

	var uploads int
	var deleted []string
	blob := &helperOSS.MockBlobService{
		UploadImageFn: func(_ context.Context, _ uuid.UUID, _ string, _ *multipart.FileHeader) (string, error) {
			uploads++
			return fmt.Sprintf("https://cdn.test/avatars/%d.png", uploads), nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			deleted = append(deleted, url)
			return nil
		},
	}

	first, err := SetAvatar(context.Background(), db, blob, rows[0].ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/avatars/1.png", *first.AvatarURL)
	assert.Empty(t, deleted)

	second, err := SetAvatar(context.Background(), db, blob, rows[0].ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/avatars/2.png", *second.AvatarURL)
	assert.Equal(t, []string{"https://cdn.test/avatars/1.png"}, deleted)
}
