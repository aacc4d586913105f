package http

import (
	"Linkly-Backend/internal/attribution"
	"Linkly-Backend/internal/geo"
	"Linkly-Backend/internal/resolver"
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResolveHandler обрабатывает GET /{identifier}: короткий код или username
type ResolveHandler struct {
	resolver      *resolver.Resolver
	recorder      *attribution.Recorder
	submitTimeout time.Duration
	log           *zap.Logger
}

// NewResolveHandler создает новый обработчик разрешения идентификаторов
func NewResolveHandler(res *resolver.Resolver, rec *attribution.Recorder, submitTimeout time.Duration, log *zap.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolver:      res,
		recorder:      rec,
		submitTimeout: submitTimeout,
		log:           log,
	}
}

// HandleResolve разрешает идентификатор из пути и выполняет редирект
// или отдает профиль
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	identifier := strings.Trim(r.URL.Path, "/")

	// Системные пути сюда попадать не должны
	if identifier == "" || strings.HasPrefix(identifier, "api/") ||
		identifier == "health" || identifier == "ready" || identifier == "metrics" {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	res := h.resolver.Resolve(r.Context(), identifier)

	switch res.Outcome {
	case resolver.OutcomeShortCode:
		userAgent := r.UserAgent()
		referer := r.Referer()
		clientIP := extractIPAddress(r)
		pos := clientPosition(r)

		attempt := h.recorder.NewAttempt(res.Link, userAgent, referer, clientIP, pos)

		// Атрибуция идет в фоне: редирект не ждет и не зависит от нее
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), h.submitTimeout)
			defer cancel()
			attempt.Run(ctx)
		}()

		h.log.Info("successful redirect",
			zap.String("short_code", res.Link.ShortCode),
			zap.String("original_url", res.Link.OriginalURL),
			zap.String("tracking_id", attempt.TrackingID()),
			zap.String("ip", clientIP))

		http.Redirect(w, r, res.Link.OriginalURL, http.StatusFound)

	case resolver.OutcomeUsername:
		h.log.Debug("identifier resolved to profile", zap.String("username", res.Profile.Username))
		writeJSON(w, res.Profile, http.StatusOK)

	default:
		h.log.Debug("identifier not found", zap.String("identifier", identifier))
		writeError(w, "Not found", http.StatusNotFound)
	}
}

// extractIPAddress извлекает IP адрес из запроса с учетом прокси
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For может содержать список IP через запятую
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := r.Header.Get("X-Client-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// clientPosition читает координаты клиента из заголовка "lat,lng"
func clientPosition(r *http.Request) geo.Positioner {
	raw := r.Header.Get("X-Client-Position")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}

	return geo.StaticPosition{Lat: lat, Lng: lng}
}
