/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorytour_guesses_total",
			Help: "Total number of submitted guesses by page and result.",
		},
		[]string{"page", "result"},
	)

	scenesSolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorytour_scenes_solved_total",
			Help: "Total number of scenes unlocked by page.",
		},
		[]string{"page"},
	)

	doorClicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorytour_door_clicks_total",
			Help: "Total number of door clicks on the home page by target route.",
		},
		[]string{"route"},
	)

	musicWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorytour_music_writes_total",
			Help: "Total number of music snapshot writes by status.",
		},
		[]string{"status"},
	)

	sessionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "memorytour_sessions_active",
			Help: "Number of connected page sessions by page.",
		},
		[]string{"page"},
	)
)
