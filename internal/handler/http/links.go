package http

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"Linkly-Backend/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LinksHandler обработчик для работы со ссылками
type LinksHandler struct {
	storage   repository.Storage
	shortLink *service.ShortLinkService
	log       *zap.Logger
	baseURL   string
}

// NewLinksHandler создает новый обработчик ссылок
func NewLinksHandler(storage repository.Storage, shortLink *service.ShortLinkService, log *zap.Logger, baseURL string) *LinksHandler {
	return &LinksHandler{
		storage:   storage,
		shortLink: shortLink,
		log:       log,
		baseURL:   baseURL,
	}
}

// CreateLinkRequest структура запроса создания ссылки
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	Title       string `json:"title,omitempty"`
	CustomCode  string `json:"custom_code,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// CreateLinkResponse структура ответа создания ссылки
type CreateLinkResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url,omitempty"`
}

// CreateLink создает новую короткую ссылку
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.OriginalURL == "" {
		writeError(w, "Original URL is required", http.StatusBadRequest)
		return
	}
	if _, err := url.ParseRequestURI(req.OriginalURL); err != nil {
		writeError(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	link := &domain.ShortLink{
		OriginalURL: req.OriginalURL,
		IsActive:    true,
	}
	if req.Title != "" {
		title := req.Title
		link.Title = &title
	}
	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			writeError(w, "Invalid expires_at format, expected RFC3339", http.StatusBadRequest)
			return
		}
		link.ExpiresAt = &expiresAt
	}

	var customCode *string
	if req.CustomCode != "" {
		customCode = &req.CustomCode
	}

	code, err := h.shortLink.Create(r.Context(), link, customCode)
	if err != nil {
		if errors.Is(err, repository.ErrShortCodeExists) {
			writeError(w, "Short code already exists", http.StatusConflict)
			return
		}
		h.log.Error("failed to create short link", zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("short link created",
		zap.String("short_code", code),
		zap.String("original_url", req.OriginalURL))

	writeJSON(w, CreateLinkResponse{
		ShortCode: code,
		ShortURL:  fmt.Sprintf("%s/%s", strings.TrimSuffix(h.baseURL, "/"), code),
	}, http.StatusCreated)
}

// GetStats возвращает статистику кликов по короткому коду:
// GET /api/links/{code}/stats
func (h *LinksHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/links/")
	code := strings.TrimSuffix(path, "/stats")
	if code == "" || code == path {
		writeError(w, "Short code is required", http.StatusBadRequest)
		return
	}

	stats, err := h.shortLink.Stats(r.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrShortCodeNotFound) {
			writeError(w, "Short code not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to load link stats", zap.String("short_code", code), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}
