package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_logins_total",
		Help: "Total number of successful logins.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_token_verifications_total",
			Help: "Total number of access token verification attempts by status.",
		},
		[]string{"status"},
	)

	devicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_devices_created_total",
		Help: "Total number of created devices.",
	})

	basketOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_basket_operations_total",
			Help: "Total number of basket operations by kind.",
		},
		[]string{"operation"},
	)
)
