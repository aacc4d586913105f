package http

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ProfileHandler обработчик публичных профилей
type ProfileHandler struct {
	storage repository.Storage
	log     *zap.Logger
}

// NewProfileHandler создает новый обработчик профилей
func NewProfileHandler(storage repository.Storage, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		storage: storage,
		log:     log,
	}
}

// ProfileResponse профиль вместе с его активными ссылками
type ProfileResponse struct {
	Profile *domain.Profile     `json:"profile"`
	Links   []*domain.ShortLink `json:"links"`
}

// GetProfile возвращает профиль и его ссылки:
// GET /api/profiles/{username}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	username = strings.Trim(username, "/")
	if username == "" {
		writeError(w, "Username is required", http.StatusBadRequest)
		return
	}

	profile, err := h.storage.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			writeError(w, "Profile not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to load profile", zap.String("username", username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	links, err := h.storage.ListProfileLinks(r.Context(), profile.ID)
	if err != nil {
		h.log.Error("failed to load profile links", zap.String("username", username), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ProfileResponse{Profile: profile, Links: links}, http.StatusOK)
}
