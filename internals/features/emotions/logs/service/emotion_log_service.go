package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"preschool_backend/internals/constants"
	rosterModel "preschool_backend/internals/features/children/roster/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
	catalogService "preschool_backend/internals/features/emotions/catalog/service"
	"preschool_backend/internals/features/emotions/logs/dto"
	"preschool_backend/internals/features/emotions/logs/model"
	"preschool_backend/internals/helpers/dbtime"
)

var sessionConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "child_id"}, {Name: "log_date"}, {Name: "session"}},
	DoNothing: true,
}

/* =========================================================
   Submit
========================================================= */

// Submit menulis satu batch log dalam satu transaksi (all-or-nothing).
// Per item:
//  1. hitung log (anak, tanggal); >= 2 → 409
//  2. snapshot nama/kelas dari roster (404 kalau anak tidak ada)
//  3. resolve label emosi (404)
//  4. sesi dari jumlah log hari itu (0 → morning, 1 → afternoon), lalu
//     INSERT ... ON CONFLICT DO NOTHING; slot sudah terisi → 409
func Submit(db *gorm.DB, req dto.SubmitRequest, recordedBy *uuid.UUID) ([]model.EmotionLogModel, map[uint]string, error) {
	out := make([]model.EmotionLogModel, 0, len(req.Logs))
	labels := make(map[uint]string)

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, it := range req.Logs {
			date := it.LogDate()

			var n int64
			if err := tx.Model(&model.EmotionLogModel{}).
				Where("child_id = ? AND log_date = ?", it.ChildID, date).
				Count(&n).Error; err != nil {
				return err
			}
			if n >= constants.MaxLogsPerChildPerDay {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Child %d already logged twice on %s", it.ChildID, dbtime.FormatDate(date)))
			}

			name, className, err := childSnapshot(tx, it)
			if err != nil {
				return err
			}

			emo, err := catalogService.FindByLabel(tx, it.EmotionLabel)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Emotion %q not found", it.EmotionLabel))
				}
				return err
			}
			labels[emo.ID] = emo.Label

			row, err := insertSession(tx, int(n), model.EmotionLogModel{
				ChildID:    it.ChildID,
				ChildName:  name,
				ClassName:  className,
				EmotionID:  emo.ID,
				LogDate:    date,
				RecordedBy: recordedBy,
			})
			if err != nil {
				return err
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] Emotion logs written: %d", len(out))
	return out, labels, nil
}

// insertSession: urutan submit menentukan sesi; unique index menolak slot ganda
func insertSession(tx *gorm.DB, count int, base model.EmotionLogModel) (model.EmotionLogModel, error) {
	row := base
	row.Session = constants.SessionOrder[count]
	res := tx.Clauses(sessionConflict).Create(&row)
	if res.Error != nil {
		return row, res.Error
	}
	if res.RowsAffected == 0 {
		return base, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Child %d already has a %s log on %s", base.ChildID, row.Session, dbtime.FormatDate(base.LogDate)))
	}
	return row, nil
}

// childSnapshot: nama/kelas dari body kalau diisi, selain itu dari roster
func childSnapshot(tx *gorm.DB, it dto.LogItem) (string, string, error) {
	var child rosterModel.ChildModel
	if err := tx.Select("id", "name", "class_name").Where("id = ?", it.ChildID).Take(&child).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Child %d not found", it.ChildID))
		}
		return "", "", err
	}
	name, className := it.ChildName, it.ClassName
	if name == "" {
		name = child.Name
	}
	if className == "" {
		className = child.ClassName
	}
	return name, className, nil
}

/* =========================================================
   Read
========================================================= */

func labelMap(db *gorm.DB, rows []model.EmotionLogModel) map[uint]string {
	ids := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for _, r := range rows {
		if !seen[r.EmotionID] {
			seen[r.EmotionID] = true
			ids = append(ids, r.EmotionID)
		}
	}
	out := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	var emos []catalogModel.EmotionModel
	if err := db.Select("id", "label").Where("id IN ?", ids).Find(&emos).Error; err != nil {
		log.Printf("[WARN] load emotion labels: %v", err)
		return out
	}
	for _, e := range emos {
		out[e.ID] = e.Label
	}
	return out
}

// DayState: none → morning → afternoon
func DayState(db *gorm.DB, childID uint, date time.Time) (dto.DayStateResponse, error) {
	var rows []model.EmotionLogModel
	if err := db.Where("child_id = ? AND log_date = ?", childID, date).
		Order("logged_at ASC, id ASC").Find(&rows).Error; err != nil {
		return dto.DayStateResponse{}, err
	}

	taken := map[string]bool{}
	for _, r := range rows {
		taken[r.Session] = true
	}
	resp := dto.DayStateResponse{
		ChildID: childID,
		Date:    dbtime.FormatDate(date),
		Count:   len(rows),
		State:   "none",
		Logs:    dto.FromModels(rows, labelMap(db, rows)),
	}
	for _, s := range constants.SessionOrder {
		if taken[s] {
			resp.State = s
		}
	}
	if len(rows) < len(constants.SessionOrder) {
		next := constants.SessionOrder[len(rows)]
		resp.NextSession = &next
	}
	return resp, nil
}

type ListFilter struct {
	Date      *time.Time
	ClassName string
	ChildID   uint
	Offset    int
	Limit     int
}

func List(db *gorm.DB, f ListFilter) ([]model.EmotionLogModel, int64, map[uint]string, error) {
	q := db.Model(&model.EmotionLogModel{})
	if f.Date != nil {
		q = q.Where("log_date = ?", *f.Date)
	}
	if s := strings.TrimSpace(f.ClassName); s != "" {
		q = q.Where("class_name = ?", s)
	}
	if f.ChildID > 0 {
		q = q.Where("child_id = ?", f.ChildID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	var rows []model.EmotionLogModel
	if err := q.Order("log_date DESC, child_id ASC, session DESC").Find(&rows).Error; err != nil {
		return nil, 0, nil, err
	}
	return rows, total, labelMap(db, rows), nil
}

// Summary: jumlah log per emosi & sesi pada satu tanggal (emosi tanpa log tetap muncul)
func Summary(db *gorm.DB, date time.Time, className string) (dto.SummaryResponse, error) {
	type agg struct {
		EmotionID uint
		Session   string
		Total     int64
	}

	base := func() *gorm.DB {
		q := db.Model(&model.EmotionLogModel{}).Where("log_date = ?", date)
		if s := strings.TrimSpace(className); s != "" {
			q = q.Where("class_name = ?", s)
		}
		return q
	}

	var rows []agg
	if err := base().
		Select("emotion_id, session, COUNT(*) AS total").
		Group("emotion_id, session").
		Scan(&rows).Error; err != nil {
		return dto.SummaryResponse{}, err
	}

	var children int64
	if err := base().Distinct("child_id").Count(&children).Error; err != nil {
		return dto.SummaryResponse{}, err
	}

	var emos []catalogModel.EmotionModel
	if err := db.Order("id ASC").Find(&emos).Error; err != nil {
		return dto.SummaryResponse{}, err
	}

	byID := make(map[uint]*dto.SummaryRow, len(emos))
	resp := dto.SummaryResponse{
		Date:      dbtime.FormatDate(date),
		ClassName: strings.TrimSpace(className),
		Children:  children,
		Emotions:  make([]dto.SummaryRow, len(emos)),
	}
	for i, e := range emos {
		resp.Emotions[i] = dto.SummaryRow{EmotionID: e.ID, Label: e.Label, Color: e.Color}
		byID[e.ID] = &resp.Emotions[i]
	}
	for _, r := range rows {
		sr, ok := byID[r.EmotionID]
		if !ok {
			continue
		}
		switch r.Session {
		case constants.SessionMorning:
			sr.Morning += r.Total
		case constants.SessionAfternoon:
			sr.Afternoon += r.Total
		}
		sr.Total += r.Total
	}
	return resp, nil
}

// Delete: satu-satunya jalan mundur di state machine harian
func Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&model.EmotionLogModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Emotion log not found")
	}
	return nil
}
