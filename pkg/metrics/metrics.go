// Package metrics registers the Prometheus instruments the matching core
// reports on.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcha_swipes_total",
		Help: "Swipe transitions processed, by direction.",
	}, []string{"direction"})

	matchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcha_matches_total",
		Help: "Mutual likes promoted to a match.",
	})

	eventsPushedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcha_events_pushed_total",
		Help: "Live events pushed to users, by type and delivery outcome.",
	}, []string{"type", "delivered"})
)

// SwipeProcessed records a completed swipe transition.
func SwipeProcessed(direction string) {
	swipesTotal.WithLabelValues(direction).Inc()
}

// MatchCreated records a promoted match.
func MatchCreated() {
	matchesTotal.Inc()
}

// EventPushed records a push attempt and whether a live connection took it.
func EventPushed(eventType string, delivered bool) {
	eventsPushedTotal.WithLabelValues(eventType, strconv.FormatBool(delivered)).Inc()
}
