package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/emotions/actions/dto"
	"preschool_backend/internals/features/emotions/actions/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
)

// List: emotionID 0 = semua
func List(db *gorm.DB, emotionID uint) ([]model.ActionModel, error) {
	q := db.Model(&model.ActionModel{})
	if emotionID > 0 {
		q = q.Where("emotion_id = ?", emotionID)
	}
	var rows []model.ActionModel
	err := q.Order("emotion_id ASC, sort_order ASC, id ASC").Find(&rows).Error
	return rows, err
}

func Get(db *gorm.DB, id uint) (*model.ActionModel, error) {
	var m model.ActionModel
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Action not found")
		}
		return nil, err
	}
	return &m, nil
}

func ensureEmotion(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&catalogModel.EmotionModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "emotion_id does not exist")
	}
	return nil
}

func Create(db *gorm.DB, req dto.CreateActionRequest) (*model.ActionModel, error) {
	if err := ensureEmotion(db, req.EmotionID); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func Update(db *gorm.DB, id uint, req dto.UpdateActionRequest) (*model.ActionModel, error) {
	m, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(m)
	if req.EmotionID != nil {
		if err := ensureEmotion(db, m.EmotionID); err != nil {
			return nil, err
		}
	}
	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&model.ActionModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Action not found")
	}
	return nil
}
