// Package repositories handles database access for the catalogue models.
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kdalam/furnidex/app/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ProductRepository handles database operations for Product and ImportRun.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByCode looks up a product by its exact code.
func (r *ProductRepository) FindByCode(code string) (models.Product, error) {
	var p models.Product
	err := r.db.Where("code = ?", code).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	return p, err
}

// All returns every product ordered by code.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("code asc").Find(&products).Error
	return products, err
}

// Count returns the number of products in the catalogue.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}

// UpdatePrice sets a new price on the product with the given code.
func (r *ProductRepository) UpdatePrice(code, price string) error {
	res := r.db.Model(&models.Product{}).Where("code = ?", code).Update("price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every product from the catalogue.
func (r *ProductRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.Product{}).Error
}

// ReplaceAll swaps the entire catalogue for the given products inside one
// transaction. Either the new catalogue lands completely or the previous
// rows survive untouched.
func (r *ProductRepository) ReplaceAll(products []models.Product, run *models.ImportRun) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if len(products) > 0 {
			if err := tx.CreateInBatches(products, 500).Error; err != nil {
				return err
			}
		}
		if run != nil {
			run.Rows = len(products)
			if err := tx.Create(run).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateImportRun records an ingest outside of ReplaceAll.
func (r *ProductRepository) CreateImportRun(run *models.ImportRun) error {
	return r.db.Create(run).Error
}

// ImportRuns returns the most recent ingest records, newest first.
func (r *ProductRepository) ImportRuns(limit int) ([]models.ImportRun, error) {
	var runs []models.ImportRun
	err := r.db.Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}
