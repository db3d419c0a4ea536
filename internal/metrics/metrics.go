package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargehub_sessions_started_total",
			Help: "Total charging sessions started",
		},
		[]string{"method"},
	)

	SessionsStopped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chargehub_sessions_stopped_total",
			Help: "Total charging sessions stopped or superseded",
		},
	)

	TelemetryTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chargehub_telemetry_ticks_total",
			Help: "Total telemetry ticks applied to an active session",
		},
	)

	EnergyDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chargehub_energy_delivered_kwh_total",
			Help: "Total simulated energy delivered across sessions",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chargehub_active_sessions",
			Help: "Number of currently active sessions (0 or 1)",
		},
	)

	ActivePowerKw = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chargehub_active_power_kw",
			Help: "Current simulated charging power",
		},
	)
)

// Register installs all collectors into the default registry.
func Register() {
	prometheus.MustRegister(
		SessionsStarted,
		SessionsStopped,
		TelemetryTicks,
		EnergyDelivered,
		ActiveSessions,
		ActivePowerKw,
	)
}

// Handler exposes the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
