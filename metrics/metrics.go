// Package metrics defines the Prometheus instrumentation for the store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts successful checkouts.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jersey_store_orders_created_total",
		Help: "Number of orders created through checkout.",
	})

	// CheckoutFailures counts checkouts rolled back, by reason.
	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jersey_store_checkout_failures_total",
		Help: "Number of failed checkout attempts.",
	}, []string{"reason"})

	// ReturnsRequested counts accepted return requests.
	ReturnsRequested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jersey_store_returns_requested_total",
		Help: "Number of return requests accepted.",
	})

	// ReviewsCreated counts published reviews.
	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jersey_store_reviews_created_total",
		Help: "Number of reviews created.",
	})
)
