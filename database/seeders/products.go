package seeders

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kdalam/furnidex/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small demo catalogue for local development.
// Existing codes are left untouched.
func SeedProducts(db *gorm.DB) error {
	demo := []models.Product{
		{Code: "A1", Description: "كرسي خشب زان", Price: "450", Supplier: "مصنع الشرق"},
		{Code: "A2", Description: "طاولة طعام 6 أشخاص", Price: "2,300", Supplier: "مصنع الشرق"},
		{Code: "B7", Description: "خزانة ملابس بابين", Price: "1,850", Supplier: "الأثاث الحديث"},
		{Code: "C3", Description: "سرير مفرد مع مرتبة", Price: "1,200", Supplier: "النوم الهانئ"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&demo).Error
}
