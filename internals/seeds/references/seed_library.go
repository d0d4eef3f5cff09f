package references

import (
	_ "embed"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	libraryModel "preschool_backend/internals/features/references/library/model"
)

//go:embed data_library.json
var DefaultData []byte

type BookSeed struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"cover_url"`
}

type TierSeed struct {
	Name        string     `json:"name"`
	MinPoints   int        `json:"min_points"`
	Description string     `json:"description"`
	Books       []BookSeed `json:"books"`
}

func SeedLibraryFromJSON(db *gorm.DB, content []byte) error {
	var data []TierSeed
	if err := sonic.Unmarshal(content, &data); err != nil {
		return err
	}

	for _, item := range data {
		var existing libraryModel.TierModel
		if err := db.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			log.Printf("[SEED] tier %q already exists, skipped", item.Name)
			continue
		}

		tier := libraryModel.TierModel{
			Name:        item.Name,
			MinPoints:   item.MinPoints,
			Description: item.Description,
		}
		for _, b := range item.Books {
			tier.Books = append(tier.Books, libraryModel.BookModel{Title: b.Title, Author: b.Author, CoverURL: b.CoverURL})
		}
		// Create dengan association → books ikut ter-insert
		if err := db.Create(&tier).Error; err != nil {
			log.Printf("[SEED ERROR] tier %q: %v", item.Name, err)
			continue
		}
		log.Printf("[SEED] tier %q inserted (%d books)", item.Name, len(tier.Books))
	}
	return nil
}
