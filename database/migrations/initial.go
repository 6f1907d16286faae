package migrations

import (
	"gorm.io/gorm"

	"github.com/kdalam/furnidex/app/models"
	"github.com/kdalam/furnidex/pkg/migration"
)

func init() {
	migration.Register("20260801000000_create_products_table", &CreateProductsTable{})
	migration.Register("20260801000001_create_import_runs_table", &CreateImportRunsTable{})
}

// -------- 0001: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0002: import runs --------

type CreateImportRunsTable struct{}

func (m *CreateImportRunsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ImportRun{})
}

func (m *CreateImportRunsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("import_runs")
}
