package models

import (
	"errors"
	"time"
)

// ReturnStatus is the lifecycle state of a return request
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

// ReturnWindow is how long after delivery a return may be requested.
// The boundary is inclusive: a request made exactly ReturnWindow after
// delivery is still accepted.
const ReturnWindow = 7 * 24 * time.Hour

var (
	ErrOrderNotDelivered  = errors.New("only delivered orders can be returned")
	ErrReturnWindowClosed = errors.New("return window has closed")
	ErrReturnReasonEmpty  = errors.New("return reason is required")
)

// Return represents returns table
type Return struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	OrderID   uint         `gorm:"not null;index" json:"order_id"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	Reason    string       `gorm:"type:text;not null" json:"reason"`
	Status    ReturnStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Return
func (Return) TableName() string {
	return "returns"
}

// ReturnEligible checks whether the order can enter the return flow at now.
// UpdatedAt marks the delivery time since delivered is the last direct
// status edit an order receives.
func (o *Order) ReturnEligible(now time.Time) error {
	if o.Status != OrderDelivered {
		return ErrOrderNotDelivered
	}
	if now.After(o.UpdatedAt.Add(ReturnWindow)) {
		return ErrReturnWindowClosed
	}
	return nil
}
