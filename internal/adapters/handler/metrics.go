package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// admissionsTotal counts admission attempts by outcome: admitted,
	// room_full, partial (tenant row without occupancy pairing), failed.
	admissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "occupancy_admissions_total",
		Help: "Tenant admission attempts by outcome.",
	}, []string{"outcome"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "occupancy_room_transitions_total",
		Help: "Room status transition attempts by result.",
	}, []string{"result"})
)
