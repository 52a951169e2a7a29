package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey"`                    // Primary key
	Username string  `gorm:"size:50;uniqueIndex;not null"`  // Unique username
	Email    string  `gorm:"size:100;uniqueIndex;not null"` // Unique email address
	Password string  `gorm:"size:100;not null"`             // Bcrypt password hash
	Plants   []Plant `gorm:"constraint:OnUpdate:CASCADE"`   // One-to-many relationship with Plant
}
