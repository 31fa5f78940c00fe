// Package metrics exposes Prometheus instruments for the evaluation loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Count of market ticks ingested"},
		[]string{"symbol"},
	)
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "commands_total", Help: "Policy commands evaluated"},
		[]string{"policy", "action"},
	)
	SubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "commands_submitted_total", Help: "Actionable commands handed to the executor"},
		[]string{"symbol", "action"},
	)
	JoltAbs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "jolt_abs", Help: "Magnitude of the latest jolt estimate"},
		[]string{"symbol"},
	)
	EventPulse = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "event_pulse", Help: "Event pulse coordinates for each scheduled event"},
		[]string{"event", "axis"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, CommandsTotal, SubmittedTotal, JoltAbs, EventPulse)
}

// Handler serves /metrics and a /healthz endpoint backed by health.
func Handler(health func() string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := health()
		if status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, _ = w.Write([]byte(status))
	})
	return mux
}

// Serve starts the metrics server in the background.
func Serve(addr string, health func() string) *http.Server {
	srv := &http.Server{Addr: addr, Handler: Handler(health)}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
