package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/app/services"
	"github.com/kdalam/furnidex/pkg/auth"
	"github.com/kdalam/furnidex/pkg/database"
	"github.com/kdalam/furnidex/pkg/tabular"
)

// furnidex import <file> — replace the catalogue from a local file.
var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Replace the catalogue with the rows of a CSV or Excel file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		var ds *tabular.Dataset
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			ds, err = tabular.ReadCSV(f)
		case ".xlsx", ".xls":
			ds, err = tabular.ReadExcel(f)
		default:
			return fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
		}
		if err != nil {
			return err
		}

		repo := repositories.NewProductRepository(database.DB)
		importer := services.NewImportService(repo)

		rows, err := importer.Import(ds, "cli", filepath.Base(path), "cli")
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d products from %s\n", rows, path)
		return nil
	},
}

// furnidex hash-password — produce a bcrypt hash for the config file.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password for VIEW_PASSWORD_HASH / ADMIN_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}
