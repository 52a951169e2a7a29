package domain

import "time" // Calendar dates

// Plant Model
type Plant struct {
	ID        uint      `gorm:"primaryKey"`                  // Primary key
	Name      string    `gorm:"size:100;not null"`           // Plant name
	PlantDate time.Time `gorm:"type:date;not null"`          // Planting date, no time component
	UserID    uint      `gorm:"index;not null"`              // Foreign key to the owning User
	Entries   []Entry   `gorm:"constraint:OnUpdate:CASCADE"` // One-to-many relationship with Entry
}
