// Package models holds the GORM models for the furniture catalogue.
package models

import "time"

// Product is one furniture item in the catalogue.
// Price stays a string on purpose: source sheets carry values like
// "1,200", "250 ريال" or ranges, and the app never does arithmetic on it.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"type:text" json:"description"`
	Price       string    `gorm:"size:50" json:"price"`
	Supplier    string    `gorm:"size:100" json:"supplier"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportRun records one catalogue ingest: where the data came from,
// who triggered it and how many rows landed.
type ImportRun struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Source    string    `gorm:"size:20;not null" json:"source"` // file | sheet | cli
	Name      string    `gorm:"size:255" json:"name"`           // filename or spreadsheet id
	Rows      int       `gorm:"not null" json:"rows"`
	Actor     string    `gorm:"size:100" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
