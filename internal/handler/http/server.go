package http

import (
	"Linkly-Backend/internal/analytics"
	"Linkly-Backend/internal/attribution"
	"Linkly-Backend/internal/repository"
	"Linkly-Backend/internal/resolver"
	"Linkly-Backend/internal/service"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP сервер с обработчиками
type Server struct {
	resolveHandler *ResolveHandler
	profileHandler *ProfileHandler
	linksHandler   *LinksHandler
	healthHandler  *HealthHandler
	log            *zap.Logger
}

// NewServer создает новый HTTP сервер. dbCheck опрашивает базу данных
// напрямую для /health, минуя кэширующие слои storage.
func NewServer(
	storage repository.Storage,
	dbCheck func(ctx context.Context) error,
	res *resolver.Resolver,
	recorder *attribution.Recorder,
	shortLink *service.ShortLinkService,
	processor *analytics.Processor,
	submitTimeout time.Duration,
	log *zap.Logger,
	baseURL string,
) *Server {
	return &Server{
		resolveHandler: NewResolveHandler(res, recorder, submitTimeout, log),
		profileHandler: NewProfileHandler(storage, log),
		linksHandler:   NewLinksHandler(storage, shortLink, log, baseURL),
		healthHandler:  NewHealthHandler(dbCheck, processor, log),
		log:            log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)
	mux.HandleFunc("/metrics", s.healthHandler.Metrics)

	// API endpoints
	mux.HandleFunc("/api/links", s.linksHandler.CreateLink)
	mux.HandleFunc("/api/links/", s.linksHandler.GetStats)
	mux.HandleFunc("/api/profiles/", s.profileHandler.GetProfile)

	// Resolve endpoint - должен быть последним
	mux.HandleFunc("/", s.resolveHandler.HandleResolve)

	return Chain(mux,
		RequestID,
		Logging(s.log),
		Recovery(s.log),
		CORS,
	)
}
