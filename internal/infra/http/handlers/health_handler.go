package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BrokerStatus is the part of the broker connection health cares about.
type BrokerStatus interface {
	IsClosed() bool
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB        Pinger
	Broker    BrokerStatus
	RowStore  bool
	Documents string
	Mail      string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler takes the names of the configured document store and mail
// transport; empty means not configured.
func NewHealthHandler(rowStore bool, documents, mail string, broker BrokerStatus) *HealthHandler {
	return &HealthHandler{
		Broker:    broker,
		RowStore:  rowStore,
		Documents: documents,
		Mail:      mail,
		StartTime: time.Now(),
	}
}

// WithDatabase makes the check ping the Postgres document store.
func (h *HealthHandler) WithDatabase(db Pinger) *HealthHandler {
	h.DB = db
	return h
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"sheets":    "not configured",
		"documents": configured(h.Documents),
		"mail":      configured(h.Mail),
		"rabbitmq":  "not configured",
		"database":  "not configured",
	}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	}

	if h.RowStore {
		deps["sheets"] = "configured"
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	}

	status := "healthy"
	for _, v := range deps {
		if strings.HasPrefix(v, "unhealthy") {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func configured(name string) string {
	if name == "" {
		return "not configured"
	}
	return "configured: " + name
}
