// Package http
package http

import (
	"net/http"

	"hostpulse/internal/adapters/http/middleware"
	"hostpulse/internal/adapters/ws"
	"hostpulse/internal/config"
	"hostpulse/internal/logger"
)

type RouterDeps struct {
	Metrics *MetricsHandler
	Ws      *ws.Handler
}

func NewRouter(cfg *config.Config, log logger.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestID())
	globalMw.Use(middleware.Logger(log))
	globalMw.Use(middleware.CORS(cfg))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	if deps.Ws != nil {
		mux.HandleFunc("GET /ws", deps.Ws.Serve)
	}

	// METRICS
	mux.HandleFunc("GET /{$}", deps.Metrics.Snapshot)
	mux.HandleFunc("GET /cpu", deps.Metrics.CPU)
	mux.HandleFunc("GET /disk", deps.Metrics.Disk)
	mux.HandleFunc("GET /memory", deps.Metrics.Memory)
	mux.HandleFunc("GET /gpu", deps.Metrics.GPU)
	mux.HandleFunc("GET /network", deps.Metrics.Network)

	return globalMw.Apply(mux)
}
