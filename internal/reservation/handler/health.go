package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	httputil "fleetlease/pkg/http"
	"fleetlease/pkg/logger"
)

// Pinger is the health-probe slice of a service client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// HealthHandler reports liveness and readiness. Readiness requires all
// upstream services to answer their health probes.
type HealthHandler struct {
	services map[string]Pinger
	log      *logger.Logger
}

func NewHealthHandler(log *logger.Logger, services map[string]Pinger) *HealthHandler {
	return &HealthHandler{services: services, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	statuses := make(map[string]string, len(h.services))
	ready := true

	for name, svc := range h.services {
		if err := svc.Ping(ctx); err != nil {
			h.log.Error("Upstream health check failed",
				"service", name,
				"error", err,
			)
			statuses[name] = "error"
			ready = false
			continue
		}
		statuses[name] = "ok"
	}

	if !ready {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Services: statuses,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Services: statuses,
	})
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
