package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleType identifies what a sale targets
type SaleType string

const (
	SalePlayer SaleType = "PLAYER"
	SaleTeam   SaleType = "TEAM"
	SaleLeague SaleType = "LEAGUE"
	SaleAll    SaleType = "ALL"
)

// DiscountType identifies how a discount is applied
type DiscountType string

const (
	DiscountFlat       DiscountType = "FLAT"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

// Sale represents sales table. TargetValue holds a player or team id for
// PLAYER/TEAM sales and a league name for LEAGUE sales; ALL ignores it.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SaleType      SaleType        `gorm:"type:varchar(10);not null" json:"sale_type"`
	TargetValue   string          `gorm:"type:varchar(100)" json:"target_value"`
	DiscountType  DiscountType    `gorm:"type:varchar(10);not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null" json:"end_date"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// ActiveAt reports whether the sale window covers the given instant.
// Both endpoints are inclusive.
func (s *Sale) ActiveAt(now time.Time) bool {
	return s.IsActive && !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// AppliesTo reports whether the sale targets the given jersey. The jersey
// must have Player and Player.Team populated. A PLAYER or TEAM sale whose
// target is not a parseable id never matches; bad rows are skipped rather
// than failing the whole evaluation.
func (s *Sale) AppliesTo(j *Jersey) bool {
	switch s.SaleType {
	case SaleAll:
		return true
	case SalePlayer:
		id, err := strconv.ParseUint(strings.TrimSpace(s.TargetValue), 10, 64)
		return err == nil && uint(id) == j.PlayerID
	case SaleTeam:
		id, err := strconv.ParseUint(strings.TrimSpace(s.TargetValue), 10, 64)
		return err == nil && uint(id) == j.Player.TeamID
	case SaleLeague:
		return strings.EqualFold(strings.TrimSpace(s.TargetValue), j.Player.Team.League)
	}
	return false
}

// Apply returns the discounted price, clamped at zero.
func (s *Sale) Apply(price decimal.Decimal) decimal.Decimal {
	var discounted decimal.Decimal
	switch s.DiscountType {
	case DiscountFlat:
		discounted = price.Sub(s.DiscountValue)
	case DiscountPercentage:
		discounted = price.Sub(price.Mul(s.DiscountValue).Div(decimal.NewFromInt(100)))
	default:
		return price
	}
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}

// ResolveSalePrice evaluates the sales in the order given and returns the
// effective price from the first sale that is live at now and targets the
// jersey. The first qualifying sale wins even when a later one would
// discount more; callers must pass sales in query (id) order to keep that
// behavior stable. ok is false when no sale applies.
func ResolveSalePrice(j *Jersey, sales []Sale, now time.Time) (price decimal.Decimal, ok bool) {
	for i := range sales {
		s := &sales[i]
		if !s.ActiveAt(now) {
			continue
		}
		if !s.AppliesTo(j) {
			continue
		}
		return s.Apply(j.Price), true
	}
	return decimal.Zero, false
}
