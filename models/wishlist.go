package models

import "time"

// Wishlist represents wishlists table. One row per (user, jersey) pair;
// adding an existing pair is an idempotent no-op at the API layer.
type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlists_user_jersey" json:"user_id"`
	JerseyID  uint      `gorm:"not null;uniqueIndex:idx_wishlists_user_jersey" json:"jersey_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Jersey Jersey `gorm:"foreignKey:JerseyID" json:"jersey,omitempty"`
}

// TableName specifies the table name for Wishlist
func (Wishlist) TableName() string {
	return "wishlists"
}
