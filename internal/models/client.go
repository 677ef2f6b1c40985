package models

import "time"

// Client of a workspace, no login of its own.
type Client struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	WorkspaceID uint `gorm:"index" json:"workspace_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Surname   string `gorm:"size:100" json:"surname"`
	Phone     string `gorm:"size:20;index" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	BirthDate string `gorm:"size:10" json:"birth_date"`

	// the booking API spells this field "prefernces"
	Preferences string `gorm:"size:255" json:"prefernces"`
	Comments    string `gorm:"size:255" json:"comments"`

	Category         string   `gorm:"size:20" json:"category"`
	PersonalDiscount *float64 `json:"personal_discount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
