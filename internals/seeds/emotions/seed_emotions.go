package emotions

import (
	_ "embed"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	actionModel "preschool_backend/internals/features/emotions/actions/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
)

//go:embed data_emotions.json
var DefaultData []byte

type ActionSeed struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type EmotionSeed struct {
	Label    string       `json:"label"`
	Message  string       `json:"message"`
	ImageURL string       `json:"image_url"`
	Color    string       `json:"color"`
	Actions  []ActionSeed `json:"actions"`
}

// SeedEmotionsFromJSON: emosi yang labelnya sudah ada dilewati (aksi ikut dilewati).
func SeedEmotionsFromJSON(db *gorm.DB, content []byte) error {
	var data []EmotionSeed
	if err := sonic.Unmarshal(content, &data); err != nil {
		return err
	}

	for _, item := range data {
		var count int64
		if err := db.Model(&catalogModel.EmotionModel{}).Where("LOWER(label) = LOWER(?)", item.Label).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("[SEED] emotion %q already exists, skipped", item.Label)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			emotion := catalogModel.EmotionModel{
				Label:    item.Label,
				Message:  item.Message,
				ImageURL: item.ImageURL,
				Color:    item.Color,
			}
			if err := tx.Create(&emotion).Error; err != nil {
				return err
			}
			for i, a := range item.Actions {
				action := actionModel.ActionModel{EmotionID: emotion.ID, Name: a.Name, Icon: a.Icon, SortOrder: i}
				if err := tx.Create(&action).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("[SEED ERROR] emotion %q: %v", item.Label, err)
			continue
		}
		log.Printf("[SEED] emotion %q inserted (%d actions)", item.Label, len(item.Actions))
	}
	return nil
}
