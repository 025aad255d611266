package postgres

import (
	"github.com/cetprep/mocktest-service/internal/models"
	"gorm.io/gorm"
)

// SeedCatalog inserts the two standards and their subjects if absent.
// Chapters are loaded separately alongside the question bank.
func SeedCatalog(db *gorm.DB) error {
	standards := []models.Standard{
		{Standard: models.Standard11, Order: 1},
		{Standard: models.Standard12, Order: 2},
	}
	for i := range standards {
		if err := db.Where("standard = ?", standards[i].Standard).
			FirstOrCreate(&standards[i]).Error; err != nil {
			return err
		}
	}

	for _, standard := range standards {
		for i, code := range models.AllSubjectCodes {
			subject := models.Subject{
				Code:       code,
				Order:      i + 1,
				StandardID: standard.ID,
			}
			if err := db.Where("standard_id = ? AND code = ?", standard.ID, code).
				FirstOrCreate(&subject).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
