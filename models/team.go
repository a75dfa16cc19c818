package models

import "time"

// Team represents teams table
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;unique" json:"name"`
	League    string    `gorm:"type:varchar(100);not null" json:"league"`
	Logo      string    `gorm:"type:varchar(255)" json:"logo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}
