package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReturnEligible(t *testing.T) {
	delivered := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  OrderStatus
		now     time.Time
		wantErr error
	}{
		{"delivered yesterday", OrderDelivered, delivered.Add(24 * time.Hour), nil},
		{"exactly at the 7 day boundary", OrderDelivered, delivered.Add(ReturnWindow), nil},
		{"one second past the boundary", OrderDelivered, delivered.Add(ReturnWindow + time.Second), ErrReturnWindowClosed},
		{"well past the window", OrderDelivered, delivered.Add(30 * 24 * time.Hour), ErrReturnWindowClosed},
		{"not yet delivered", OrderShipped, delivered.Add(time.Hour), ErrOrderNotDelivered},
		{"already in return flow", OrderReturnRequested, delivered.Add(time.Hour), ErrOrderNotDelivered},
		{"cancelled order", OrderCancelled, delivered.Add(time.Hour), ErrOrderNotDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.status, UpdatedAt: delivered}
			err := o.ReturnEligible(tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
