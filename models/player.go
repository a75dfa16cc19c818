package models

import "time"

// Player represents players table
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// TableName specifies the table name for Player
func (Player) TableName() string {
	return "players"
}
