// Package metrics holds the prometheus collectors of the game service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "minesweeper_games_started_total",
			Help: "Games created",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_finished_total",
			Help: "Games that reached a terminal state, by outcome",
		},
		[]string{"status"},
	)
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_moves_total",
			Help: "Moves applied, by mode and result",
		},
		[]string{"mode", "result"},
	)
	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minesweeper_live_sessions",
			Help: "Sessions currently held in memory",
		},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(Moves)
	prometheus.MustRegister(LiveSessions)
	prometheus.MustRegister(RequestDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
