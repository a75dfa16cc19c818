package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Jersey represents jerseys table. AverageRating is a write-through cache
// recomputed on every review mutation, never on read.
type Jersey struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	PlayerID          uint            `gorm:"not null;index" json:"player_id"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock             int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	LowStockThreshold int             `gorm:"not null;default:5" json:"low_stock_threshold"`
	AverageRating     float64         `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Player Player        `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Images []JerseyImage `gorm:"foreignKey:JerseyID" json:"images,omitempty"`
}

// TableName specifies the table name for Jersey
func (Jersey) TableName() string {
	return "jerseys"
}

// IsLowStock reports whether the jersey is at or below its restock threshold.
func (j *Jersey) IsLowStock() bool {
	return j.Stock <= j.LowStockThreshold
}

// PrimaryImage returns the primary image, falling back to the first one.
func (j *Jersey) PrimaryImage() *JerseyImage {
	for i := range j.Images {
		if j.Images[i].IsPrimary {
			return &j.Images[i]
		}
	}
	if len(j.Images) > 0 {
		return &j.Images[0]
	}
	return nil
}

// JerseyImage represents jersey_images table. At most one image per jersey
// has IsPrimary set; promotion demotes the previous primary in the same
// transaction (see SetPrimaryImage).
type JerseyImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	JerseyID     uint      `gorm:"not null;index" json:"jersey_id"`
	Image        string    `gorm:"type:varchar(255);not null" json:"image"`
	IsPrimary    bool      `gorm:"default:false" json:"is_primary"`
	DisplayOrder int       `gorm:"default:0" json:"order"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for JerseyImage
func (JerseyImage) TableName() string {
	return "jersey_images"
}

// SetPrimaryImage promotes one image of a jersey and demotes all its
// siblings, atomically.
func SetPrimaryImage(db *gorm.DB, jerseyID, imageID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&JerseyImage{}).
			Where("jersey_id = ? AND id <> ?", jerseyID, imageID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		res := tx.Model(&JerseyImage{}).
			Where("id = ? AND jersey_id = ?", imageID, jerseyID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
