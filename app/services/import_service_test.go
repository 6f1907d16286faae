package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kdalam/furnidex/app/models"
	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/app/services"
	"github.com/kdalam/furnidex/pkg/tabular"
)

func testRepo(t *testing.T) *repositories.ProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ImportRun{}))
	return repositories.NewProductRepository(db)
}

func dataset(t *testing.T, records [][]string) *tabular.Dataset {
	t.Helper()
	ds, err := tabular.FromRecords(records)
	require.NoError(t, err)
	return ds
}

func TestImportEnglishHeaders(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	ds := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"A1", "Chair", "100", "X"},
	})

	rows, err := importer.Import(ds, "file", "catalog.csv", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	p, err := repo.FindByCode("A1")
	require.NoError(t, err)
	assert.Equal(t, "Chair", p.Description)
	assert.Equal(t, "100", p.Price)
	assert.Equal(t, "X", p.Supplier)
}

func TestImportArabicHeaders(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	ds := dataset(t, [][]string{
		{"كود القطعة", "الوصف", "السعر", "المورد"},
		{"A1", "كرسي", "450", "مصنع الشرق"},
		{"B2", "طاولة", "1,200", "مصنع الشرق"},
	})

	rows, err := importer.Import(ds, "sheet", "sheet-id", "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	p, err := repo.FindByCode("B2")
	require.NoError(t, err)
	assert.Equal(t, "1,200", p.Price)
}

func TestResolveColumnsAliasPriority(t *testing.T) {
	importer := services.NewImportService(testRepo(t))

	// English header wins when an Arabic alias is also present.
	ds := dataset(t, [][]string{
		{"code", "الكود", "description", "price", "supplier"},
		{"EN", "AR", "d", "1", "s"},
	})

	mapping, err := importer.ResolveColumns(ds)
	require.NoError(t, err)
	assert.Equal(t, "code", mapping[services.FieldCode])
}

func TestImportMissingColumnLeavesPriorRows(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	seeded := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"A1", "Chair", "100", "X"},
	})
	_, err := importer.Import(seeded, "file", "first.csv", "admin")
	require.NoError(t, err)

	// No price column under any alias.
	bad := dataset(t, [][]string{
		{"code", "description", "supplier"},
		{"B2", "Table", "Y"},
	})
	_, err = importer.Import(bad, "file", "second.csv", "admin")

	var missing *services.ErrMissingColumn
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, services.FieldPrice, missing.Field)

	// The first catalogue is intact.
	p, findErr := repo.FindByCode("A1")
	require.NoError(t, findErr)
	assert.Equal(t, "Chair", p.Description)
	_, findErr = repo.FindByCode("B2")
	assert.ErrorIs(t, findErr, repositories.ErrNotFound)
}

func TestImportReplacesPreviousCatalogue(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	first := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"A1", "Chair", "100", "X"},
		{"B2", "Table", "250", "Y"},
	})
	_, err := importer.Import(first, "file", "v1.csv", "admin")
	require.NoError(t, err)

	second := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"C3", "Sofa", "900", "Z"},
	})
	rows, err := importer.Import(second, "file", "v2.csv", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	runs, err := repo.ImportRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "v2.csv", runs[0].Name)
}

func TestImportSkipsRowsWithoutCode(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	ds := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"A1", "Chair", "100", "X"},
		{"", "orphan row", "5", "X"},
	})

	rows, err := importer.Import(ds, "file", "catalog.csv", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestImportDuplicateCodesRollsBack(t *testing.T) {
	repo := testRepo(t)
	importer := services.NewImportService(repo)

	seeded := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"A1", "Chair", "100", "X"},
	})
	_, err := importer.Import(seeded, "file", "first.csv", "admin")
	require.NoError(t, err)

	dupes := dataset(t, [][]string{
		{"code", "description", "price", "supplier"},
		{"C3", "Sofa", "900", "Z"},
		{"C3", "Sofa again", "901", "Z"},
	})
	_, err = importer.Import(dupes, "file", "dupes.csv", "admin")
	require.Error(t, err)

	p, findErr := repo.FindByCode("A1")
	require.NoError(t, findErr)
	assert.Equal(t, "100", p.Price)
}
