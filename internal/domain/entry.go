package domain

import "time" // Calendar dates

// Entry Model: one append-only journal record for a single plant on a single date
type Entry struct {
	ID          uint      `gorm:"primaryKey"`         // Primary key
	Date        time.Time `gorm:"type:date;not null"` // Journal date
	Temperature float64   `gorm:"not null"`           // Temperature reading (C)
	Humidity    float64   `gorm:"not null"`           // Humidity reading (%)
	Ventilation int       `gorm:"not null"`           // Ventilation level, intended range 0-100
	Fertilized  bool      `gorm:"not null"`           // Care action flag
	Watered     bool      `gorm:"not null"`           // Care action flag
	Pruned      bool      `gorm:"not null"`           // Care action flag
	PlantID     uint      `gorm:"index;not null"`     // Foreign key to the owning Plant
}
