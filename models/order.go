package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order. Stored lowercase.
type OrderStatus string

const (
	OrderPending         OrderStatus = "pending"
	OrderProcessing      OrderStatus = "processing"
	OrderShipped         OrderStatus = "shipped"
	OrderDelivered       OrderStatus = "delivered"
	OrderReturnRequested OrderStatus = "return_requested"
	OrderReturnApproved  OrderStatus = "return_approved"
	OrderReturnRejected  OrderStatus = "return_rejected"
	OrderCancelled       OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]bool{
	OrderPending:         true,
	OrderProcessing:      true,
	OrderShipped:         true,
	OrderDelivered:       true,
	OrderReturnRequested: true,
	OrderReturnApproved:  true,
	OrderReturnRejected:  true,
	OrderCancelled:       true,
}

var (
	// ErrInvalidOrderStatus is returned for a status string outside the enum.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrOrderStatusLocked is returned when the current status permits no
	// further direct edits.
	ErrOrderStatusLocked = errors.New("order status can no longer be changed")
	// ErrTransitionForbidden is returned when the caller's role does not
	// allow the requested transition.
	ErrTransitionForbidden = errors.New("not allowed to change order to this status")
)

// ParseOrderStatus normalizes and validates a status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !orderStatuses[status] {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
	}
	return status, nil
}

// CanTransition checks a direct status edit from one state to another.
// Delivered and cancelled orders accept no direct edits; a delivered order
// only moves through the return flow. Non-staff callers may only cancel,
// and only while the order is pending or processing. Staff may set any
// valid status otherwise.
func CanTransition(from, to OrderStatus, isStaff bool) error {
	if !orderStatuses[to] {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, to)
	}
	if from == OrderDelivered || from == OrderCancelled {
		return ErrOrderStatusLocked
	}
	if isStaff {
		return nil
	}
	if to != OrderCancelled {
		return ErrTransitionForbidden
	}
	if from != OrderPending && from != OrderProcessing {
		return ErrTransitionForbidden
	}
	return nil
}

// Order represents orders table
type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// BeforeSave normalizes the status to lowercase on every persistence path.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.Status = OrderStatus(strings.ToLower(string(o.Status)))
	return nil
}

// OrderItemType distinguishes catalog jerseys from made-to-order ones
type OrderItemType string

const (
	ItemRegular OrderItemType = "regular"
	ItemCustom  OrderItemType = "custom"
)

// OrderItem represents order_items table. Price is the snapshot taken at
// purchase time and is never recomputed. A regular item references a
// catalog jersey; a custom item carries its own player name and no jersey
// reference.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	JerseyID   *uint           `gorm:"index" json:"jersey_id,omitempty"`
	Quantity   int             `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size       string          `gorm:"type:varchar(4);default:'M'" json:"size"`
	Type       OrderItemType   `gorm:"type:varchar(10);not null;default:'regular'" json:"type"`
	PlayerName string          `gorm:"type:varchar(100)" json:"player_name"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Jersey *Jersey `gorm:"foreignKey:JerseyID" json:"jersey,omitempty"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// Validate enforces the tagged-variant shape of an item.
func (it *OrderItem) Validate() error {
	if it.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	switch it.Type {
	case ItemRegular:
		if it.JerseyID == nil {
			return errors.New("regular item requires a jersey reference")
		}
	case ItemCustom:
		if it.JerseyID != nil {
			return errors.New("custom item must not reference a jersey")
		}
		if it.PlayerName == "" {
			return errors.New("custom item requires a player name")
		}
	default:
		return fmt.Errorf("invalid item type %q", it.Type)
	}
	return nil
}
