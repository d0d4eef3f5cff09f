package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/features/children/roster/model"
	helper "preschool_backend/internals/helpers"
	helperOSS "preschool_backend/internals/helpers/oss"
)

/* =========================================================
   Scope & filter
========================================================= */

type ListFilter struct {
	Owner     *uuid.UUID // nil = semua anak (admin)
	ClassName string
	Q         string
	Offset    int
	Limit     int
}

func scoped(db *gorm.DB, owner *uuid.UUID) *gorm.DB {
	q := db.Model(&model.ChildModel{})
	if owner != nil {
		q = q.Where("user_id = ?", *owner)
	}
	return q
}

func ListChildren(db *gorm.DB, f ListFilter) ([]model.ChildModel, int64, error) {
	q := scoped(db, f.Owner)
	if s := strings.TrimSpace(f.ClassName); s != "" {
		q = q.Where("class_name = ?", s)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(parent_name) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ChildModel
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Order("child_seq ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListClasses: daftar class_name unik (untuk filter panel admin)
func ListClasses(db *gorm.DB, owner *uuid.UUID) ([]string, error) {
	var out []string
	err := scoped(db, owner).
		Where("class_name <> ''").
		Distinct("class_name").
		Order("class_name ASC").
		Pluck("class_name", &out).Error
	return out, err
}

func GetChild(db *gorm.DB, id uint, owner *uuid.UUID) (*model.ChildModel, error) {
	var m model.ChildModel
	if err := scoped(db, owner).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Child not found")
		}
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   Bulk upsert (idempotent on child_seq)
========================================================= */

var upsertColumns = []string{
	"name", "gender", "age", "date_of_birth", "class_name",
	"parent_name", "phone", "address", "qr_code", "updated_at", "deleted_at",
}

// BulkUpsert: tiap baris (urut) → QR → INSERT ... ON CONFLICT (child_seq) DO UPDATE.
// Satu transaksi; baris yang pernah di-soft-delete ikut dihidupkan lagi.
// creator jadi user_id untuk baris baru; pemilik baris lama tidak pernah diganti.
// scope != nil (guru): child_seq milik user lain → 409.
func BulkUpsert(db *gorm.DB, rows []dto.ChildUpsertRequest, creator, scope *uuid.UUID) ([]model.ChildModel, error) {
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No rows to import")
	}

	seqs := make([]int, 0, len(rows))
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if scope != nil {
				if err := ensureSeqOwnedBy(tx, rows[i].ChildSeq, *scope); err != nil {
					return err
				}
			}

			m := rows[i].ToModel(creator)
			qr, err := BuildQRDataURL(m)
			if err != nil {
				return err
			}
			m.QRCode = &qr

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "child_seq"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			}).Create(&m).Error; err != nil {
				return fmt.Errorf("upsert child_seq %d: %w", m.ChildSeq, err)
			}
			seqs = append(seqs, m.ChildSeq)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []model.ChildModel
	if err := db.Where("child_seq IN ?", seqs).Order("child_seq ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	log.Printf("[INFO] Roster upsert: %d rows", len(out))
	return out, nil
}

// ensureSeqOwnedBy: baris lama (termasuk yang soft-deleted) harus milik owner
func ensureSeqOwnedBy(tx *gorm.DB, seq int, owner uuid.UUID) error {
	var existing model.ChildModel
	err := tx.Unscoped().Select("id", "user_id").Where("child_seq = ?", seq).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.UserID == nil || *existing.UserID != owner {
		return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("child_seq %d is registered by another user", seq))
	}
	return nil
}

/* =========================================================
   Single edit / delete / QR
========================================================= */

func UpdateChild(db *gorm.DB, id uint, owner *uuid.UUID, req dto.UpdateChildRequest) (*model.ChildModel, error) {
	var out *model.ChildModel
	err := db.Transaction(func(tx *gorm.DB) error {
		m, err := GetChild(tx, id, owner)
		if err != nil {
			return err
		}
		req.ApplyTo(m)

		qr, err := BuildQRDataURL(*m)
		if err != nil {
			return err
		}
		m.QRCode = &qr

		if err := tx.Save(m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "child_seq already used by another child")
			}
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// DeleteChild: soft delete; log emosi lama tetap menyimpan snapshot nama/kelas.
func DeleteChild(db *gorm.DB, id uint, owner *uuid.UUID) error {
	res := scoped(db, owner).Where("id = ?", id).Delete(&model.ChildModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Child not found")
	}
	return nil
}

func RegenerateQR(db *gorm.DB, id uint, owner *uuid.UUID) (*model.ChildModel, error) {
	m, err := GetChild(db, id, owner)
	if err != nil {
		return nil, err
	}
	qr, err := BuildQRDataURL(*m)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&model.ChildModel{}).Where("id = ?", m.ID).Update("qr_code", qr).Error; err != nil {
		return nil, err
	}
	m.QRCode = &qr
	return m, nil
}

// FindByCode: teks hasil scan QR (atau nomor urut) → anak
func FindByCode(db *gorm.DB, code string) (*model.ChildModel, error) {
	seq, err := ParseIdentityCode(code)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid QR code")
	}
	var m model.ChildModel
	if err := db.Where("child_seq = ?", seq).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Child not found")
		}
		return nil, err
	}
	return &m, nil
}

// SetAvatar: upload gambar baru → update avatar_url → hapus file lama (best-effort)
func SetAvatar(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, id uint, owner *uuid.UUID, fh *multipart.FileHeader) (*model.ChildModel, error) {
	m, err := GetChild(db, id, owner)
	if err != nil {
		return nil, err
	}

	// owner folder: user pemilik, atau UUID turunan dari id anak kalau belum ada pemilik
	folder := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("child:%d", m.ID)))
	url, err := blob.UploadImage(ctx, folder, "avatars", fh)
	if err != nil {
		return nil, err
	}

	var old string
	if m.AvatarURL != nil {
		old = *m.AvatarURL
	}
	if err := db.Model(&model.ChildModel{}).Where("id = ?", m.ID).Update("avatar_url", url).Error; err != nil {
		_ = blob.DeleteByPublicURL(ctx, url)
		return nil, err
	}
	m.AvatarURL = &url

	if old != "" && old != url {
		if err := blob.DeleteByPublicURL(ctx, old); err != nil {
			log.Printf("[WARN] delete old avatar %s: %v", old, err)
		}
	}
	return m, nil
}

/* =========================================================
   QR batch export (zip)
========================================================= */

// ZipEntryName: QR_be_<seq>_<nama>.png, unik di dalam satu arsip
func ZipEntryName(seq int, name string, used map[string]int) string {
	base := fmt.Sprintf("QR_be_%d_%s", seq, strings.ReplaceAll(helper.Slugify(name, 60), "-", "_"))
	n := used[base]
	used[base] = n + 1
	if n > 0 {
		base = fmt.Sprintf("%s_%d", base, n+1)
	}
	return base + ".png"
}

// ExportQRZip mengemas semua QR tersimpan (opsional per pemilik/kelas) ke satu zip.
// 404 kalau tidak ada baris yang punya QR.
func ExportQRZip(db *gorm.DB, owner *uuid.UUID, className string) ([]byte, int, error) {
	q := scoped(db, owner).Where("qr_code IS NOT NULL AND qr_code <> ''")
	if s := strings.TrimSpace(className); s != "" {
		q = q.Where("class_name = ?", s)
	}
	var rows []model.ChildModel
	if err := q.Order("child_seq ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, fiber.NewError(fiber.StatusNotFound, "No QR codes to export")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int, len(rows))
	now := time.Now()

	for _, r := range rows {
		png, err := DecodeQRDataURL(*r.QRCode)
		if err != nil {
			// data rusak → encode ulang dari identitas baris
			log.Printf("[WARN] child_seq %d has invalid QR data, re-encoding", r.ChildSeq)
			if png, err = EncodeQRPNG(IdentityString(r)); err != nil {
				return nil, 0, err
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     ZipEntryName(r.ChildSeq, r.Name, used),
			Method:   zip.Store, // PNG sudah terkompresi
			Modified: now,
		})
		if err != nil {
			return nil, 0, err
		}
		if _, err := w.Write(png); err != nil {
			return nil, 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(rows), nil
}
