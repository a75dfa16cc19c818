package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", OrderPending, false},
		{"Processing", OrderProcessing, false},
		{"SHIPPED", OrderShipped, false},
		{" delivered ", OrderDelivered, false},
		{"return_requested", OrderReturnRequested, false},
		{"cancelled", OrderCancelled, false},
		{"refunded", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrderStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition_Staff(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"pending to processing", OrderPending, OrderProcessing, nil},
		{"processing to shipped", OrderProcessing, OrderShipped, nil},
		{"shipped to delivered", OrderShipped, OrderDelivered, nil},
		{"pending to cancelled", OrderPending, OrderCancelled, nil},
		{"shipped to cancelled", OrderShipped, OrderCancelled, nil},
		{"backwards jump allowed for staff", OrderShipped, OrderPending, nil},
		{"delivered is terminal", OrderDelivered, OrderShipped, ErrOrderStatusLocked},
		{"delivered even to cancelled", OrderDelivered, OrderCancelled, ErrOrderStatusLocked},
		{"cancelled is terminal", OrderCancelled, OrderPending, ErrOrderStatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, true)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanTransition_NonStaff(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"cancel pending", OrderPending, OrderCancelled, nil},
		{"cancel processing", OrderProcessing, OrderCancelled, nil},
		{"cancel shipped", OrderShipped, OrderCancelled, ErrTransitionForbidden},
		{"advance status", OrderPending, OrderShipped, ErrTransitionForbidden},
		{"mark delivered", OrderShipped, OrderDelivered, ErrTransitionForbidden},
		{"delivered stays locked", OrderDelivered, OrderCancelled, ErrOrderStatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanTransition_InvalidTarget(t *testing.T) {
	err := CanTransition(OrderPending, OrderStatus("refunded"), true)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderItemValidate(t *testing.T) {
	jerseyID := uint(1)

	tests := []struct {
		name    string
		item    OrderItem
		wantErr bool
	}{
		{"regular with jersey", OrderItem{Type: ItemRegular, JerseyID: &jerseyID, Quantity: 1}, false},
		{"regular without jersey", OrderItem{Type: ItemRegular, Quantity: 1}, true},
		{"custom with player name", OrderItem{Type: ItemCustom, PlayerName: "RONALDO", Quantity: 2}, false},
		{"custom without player name", OrderItem{Type: ItemCustom, Quantity: 1}, true},
		{"custom with jersey ref", OrderItem{Type: ItemCustom, JerseyID: &jerseyID, PlayerName: "X", Quantity: 1}, true},
		{"zero quantity", OrderItem{Type: ItemRegular, JerseyID: &jerseyID, Quantity: 0}, true},
		{"unknown type", OrderItem{Type: "bulk", Quantity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
