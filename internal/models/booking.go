package models

import "time"

// Booking is the persisted shape of an appointment. Times are wall-clock
// "HH:MM" strings in the workspace timezone; Date is "YYYY-MM-DD" and may be
// empty for records created without one.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkspaceID uint      `gorm:"index" json:"workspace_id"`
	Workspace   Workspace `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Date      string `gorm:"size:10;index" json:"date"`
	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`
	Location  string `gorm:"size:100" json:"location"`

	Price  *float64 `json:"price"`
	Status string   `gorm:"size:20;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
