package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ReviewEligibleStatuses are the order states that count as a purchase for
// review eligibility. The source wavers between {processing, delivered} and
// {delivered} only; {processing, delivered} is the canonical set here so a
// buyer can review as soon as checkout succeeds.
var ReviewEligibleStatuses = []OrderStatus{OrderProcessing, OrderDelivered}

// ErrInvalidRating is returned for ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// Review represents reviews table. One review per (user, jersey) pair; the
// unique index rejects the loser of a racing duplicate insert.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_jersey" json:"user_id"`
	JerseyID  uint      `gorm:"not null;uniqueIndex:idx_reviews_user_jersey" json:"jersey_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	IsEdited  bool      `gorm:"default:false" json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// ValidateRating rejects out-of-range ratings.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// RecalculateAverageRating recomputes and persists the jersey's cached
// average from the full review set. Runs after every review create, update
// and delete so the cache never diverges from the rows it summarizes.
func RecalculateAverageRating(db *gorm.DB, jerseyID uint) error {
	var avg *float64
	if err := db.Model(&Review{}).
		Where("jersey_id = ?", jerseyID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return err
	}
	value := 0.0
	if avg != nil {
		value = *avg
	}
	return db.Model(&Jersey{}).
		Where("id = ?", jerseyID).
		UpdateColumn("average_rating", value).Error
}
