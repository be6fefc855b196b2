package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewOpsServer wires the ops routes: a liveness probe and the metrics
// gathered from the given registry.
func NewOpsServer(addr string, gatherer prometheus.Gatherer, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: promLogger{logger: logger.With().Str("component", "metrics").Logger()},
	}))

	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}

// promLogger adapts zerolog to promhttp's Println-style logger.
type promLogger struct {
	logger zerolog.Logger
}

func (l promLogger) Println(v ...interface{}) {
	l.logger.Error().Msg(fmt.Sprint(v...))
}
