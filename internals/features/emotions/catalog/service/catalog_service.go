package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/constants"
	actionModel "preschool_backend/internals/features/emotions/actions/model"
	"preschool_backend/internals/features/emotions/catalog/dto"
	"preschool_backend/internals/features/emotions/catalog/model"
	logModel "preschool_backend/internals/features/emotions/logs/model"
	helper "preschool_backend/internals/helpers"
	helperOSS "preschool_backend/internals/helpers/oss"
)

const (
	imageDir = "emotions/images"
	audioDir = "emotions/audio"
)

// Uploads: file opsional dari multipart
type Uploads struct {
	Image *multipart.FileHeader
	Audio *multipart.FileHeader
}

type CatalogService struct {
	DB    *gorm.DB
	Files *helperOSS.LocalBlobService
}

func NewCatalogService(db *gorm.DB, files *helperOSS.LocalBlobService) *CatalogService {
	return &CatalogService{DB: db, Files: files}
}

func (s *CatalogService) List() ([]model.EmotionModel, error) {
	var rows []model.EmotionModel
	err := s.DB.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *CatalogService) Get(id uint) (*model.EmotionModel, error) {
	var m model.EmotionModel
	if err := s.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Emotion not found")
		}
		return nil, err
	}
	return &m, nil
}

// FindByLabel (case-insensitive). Dipakai juga oleh penulis log emosi.
func FindByLabel(db *gorm.DB, label string) (*model.EmotionModel, error) {
	var m model.EmotionModel
	err := db.Where("LOWER(label) = ?", strings.ToLower(strings.TrimSpace(label))).Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   Upload helpers
========================================================= */

func (s *CatalogService) store(ctx context.Context, fh *multipart.FileHeader, kind int, dir string) (string, error) {
	if constants.DetectFileTypeFromExt(fh.Filename) != kind {
		if kind == constants.FileKindAudio {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Audio must be mp3/wav/ogg/m4a")
		}
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Image must be png/jpg/webp/gif/svg")
	}
	url, _, err := s.Files.UploadRawToDir(ctx, dir, fh)
	return url, err
}

// storeAll: upload semua file; kalau salah satu gagal, yang sudah tersimpan dihapus
func (s *CatalogService) storeAll(ctx context.Context, up Uploads) (img, audio string, err error) {
	if up.Image != nil {
		if img, err = s.store(ctx, up.Image, constants.FileKindImage, imageDir); err != nil {
			return "", "", err
		}
	}
	if up.Audio != nil {
		if audio, err = s.store(ctx, up.Audio, constants.FileKindAudio, audioDir); err != nil {
			s.cleanup(ctx, img)
			return "", "", err
		}
	}
	return img, audio, nil
}

// cleanup: hanya file lokal yang dihapus; URL remote dibiarkan
func (s *CatalogService) cleanup(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := s.Files.DeleteByPublicURL(ctx, u); err != nil {
			log.Printf("[WARN] delete emotion file %s: %v", u, err)
		}
	}
}

/* =========================================================
   Create / Update / Delete
========================================================= */

func (s *CatalogService) Create(ctx context.Context, req dto.CreateEmotionRequest, up Uploads) (*model.EmotionModel, error) {
	img, audio, err := s.storeAll(ctx, up)
	if err != nil {
		return nil, err
	}

	m := req.ToModel()
	if img != "" {
		m.ImageURL = img
	}
	if audio != "" {
		m.AudioURL = &audio
	}
	if m.ImageURL == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "image or image_url is required")
	}

	if err := s.DB.Create(&m).Error; err != nil {
		s.cleanup(ctx, img, audio)
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Emotion label already exists")
		}
		return nil, err
	}
	return &m, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req dto.UpdateEmotionRequest, up Uploads) (*model.EmotionModel, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	img, audio, err := s.storeAll(ctx, up)
	if err != nil {
		return nil, err
	}

	var replaced []string
	if req.Label != nil {
		m.Label = strings.TrimSpace(*req.Label)
	}
	if req.Message != nil {
		m.Message = strings.TrimSpace(*req.Message)
	}
	if req.Color != nil {
		m.Color = strings.TrimSpace(*req.Color)
	}

	newImage := img
	if newImage == "" && req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		newImage = strings.TrimSpace(*req.ImageURL)
	}
	if newImage != "" && newImage != m.ImageURL {
		replaced = append(replaced, m.ImageURL)
		m.ImageURL = newImage
	}

	newAudio := audio
	if newAudio == "" && req.AudioURL != nil {
		newAudio = strings.TrimSpace(*req.AudioURL)
	}
	switch {
	case newAudio != "":
		if m.AudioURL != nil && *m.AudioURL != newAudio {
			replaced = append(replaced, *m.AudioURL)
		}
		m.AudioURL = &newAudio
	case req.RemoveAudio && m.AudioURL != nil:
		replaced = append(replaced, *m.AudioURL)
		m.AudioURL = nil
	}

	if err := s.DB.Save(m).Error; err != nil {
		s.cleanup(ctx, img, audio)
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "Emotion label already exists")
		}
		return nil, err
	}
	s.cleanup(ctx, replaced...)
	return m, nil
}

// Delete menolak kalau emosi sudah dipakai log (riwayat tetap utuh).
// Saran aksi milik emosi ikut terhapus.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}

	var used int64
	if err := s.DB.Model(&logModel.EmotionLogModel{}).Where("emotion_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return fiber.NewError(fiber.StatusConflict, "Emotion is referenced by emotion logs")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emotion_id = ?", id).Delete(&actionModel.ActionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return err
	}
	files := []string{m.ImageURL}
	if m.AudioURL != nil {
		files = append(files, *m.AudioURL)
	}
	s.cleanup(ctx, files...)
	return nil
}
