package http

import (
	"Linkly-Backend/internal/analytics"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler обработчик health checks
type HealthHandler struct {
	dbCheck   func(ctx context.Context) error
	processor *analytics.Processor
	log       *zap.Logger
}

// NewHealthHandler создает новый health handler. dbCheck должен опрашивать
// саму базу данных, минуя кэширующие слои: иначе прогретый кэш скроет
// отказ базы. nil dbCheck пропускает проверку базы.
func NewHealthHandler(dbCheck func(ctx context.Context) error, processor *analytics.Processor, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		dbCheck:   dbCheck,
		processor: processor,
		log:       log,
	}
}

// HealthResponse структура ответа health check
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	DatabaseStatus string    `json:"database_status"`
	Uptime         string    `json:"uptime,omitempty"`
}

var startTime = time.Now()

// Health основной health check endpoint
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if h.dbCheck != nil {
		if err := h.dbCheck(ctx); err != nil {
			dbStatus = "unhealthy"
			h.log.Error("database health check failed", zap.Error(err))
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if dbStatus == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		Version:        "1.0.0",
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(startTime).String(),
	}

	writeJSON(w, response, statusCode)

	if status == "healthy" {
		h.log.Debug("health check passed")
	} else {
		h.log.Warn("health check failed", zap.String("database_status", dbStatus))
	}
}

// Ready readiness probe endpoint
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now(),
	}, http.StatusOK)
}

// Metrics endpoint с метриками процесса и очереди аналитики
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics := map[string]interface{}{
		"uptime_seconds": time.Since(startTime).Seconds(),
		"timestamp":      time.Now(),
		"version":        "1.0.0",
	}
	if h.processor != nil {
		metrics["analytics"] = h.processor.GetStats()
	}

	writeJSON(w, metrics, http.StatusOK)
}
