package models

import "time"

// JerseyType distinguishes a customization of a catalog jersey from a
// fully custom design
type JerseyType string

const (
	JerseyExisting JerseyType = "existing"
	JerseyCustom   JerseyType = "custom"
)

// Customization represents customizations table
type Customization struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	JerseyID       *uint      `gorm:"index" json:"jersey_id,omitempty"`
	JerseyType     JerseyType `gorm:"type:varchar(10);not null;default:'existing'" json:"jersey_type"`
	Name           string     `gorm:"type:varchar(100);not null" json:"name"`
	Number         string     `gorm:"type:varchar(2);not null" json:"number"`
	Design         string     `gorm:"type:text" json:"design"`
	PrimaryColor   string     `gorm:"type:varchar(50)" json:"primary_color"`
	SecondaryColor string     `gorm:"type:varchar(50)" json:"secondary_color"`
	Size           string     `gorm:"type:varchar(4);default:'M'" json:"size"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName specifies the table name for Customization
func (Customization) TableName() string {
	return "customizations"
}
