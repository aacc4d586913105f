package http

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"Linkly-Backend/internal/repository/cached"
	"Linkly-Backend/internal/repository/memory"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealth_ReportsDatabaseStatus(t *testing.T) {
	tests := []struct {
		name       string
		dbCheck    func(ctx context.Context) error
		wantCode   int
		wantStatus string
	}{
		{
			name:       "database_reachable",
			dbCheck:    func(context.Context) error { return nil },
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name:       "database_down",
			dbCheck:    func(context.Context) error { return errors.New("connection refused") },
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
		{
			name:       "no_check_configured",
			dbCheck:    nil,
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.dbCheck, nil, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()

			h.Health(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.dbCheck != nil {
				assert.Equal(t, tt.wantStatus, resp.DatabaseStatus)
			}
		})
	}
}

// deadStorage fails every read the way a lost database connection would.
type deadStorage struct {
	repository.Storage
}

func (deadStorage) GetShortLink(context.Context, string) (*domain.ShortLink, error) {
	return nil, errors.New("connection refused")
}

func (deadStorage) ListShortCodes(context.Context) ([]string, error) {
	return []string{"abc123"}, nil
}

// The warmed bloom filter answers unknown codes without touching the
// database, so the health check must ping the database directly instead of
// going through the storage stack.
func TestHealth_WarmedCacheDoesNotMaskDatabaseFailure(t *testing.T) {
	tier := cached.New(deadStorage{Storage: memory.New()}, nil, zap.NewNop())
	require.NoError(t, tier.Warm(context.Background()))

	// The storage stack swallows the outage for unknown codes
	_, err := tier.GetShortLink(context.Background(), "health-check-non-existent")
	assert.ErrorIs(t, err, repository.ErrShortCodeNotFound)

	// The handler checks the database itself and reports the outage
	dbCheck := func(context.Context) error { return errors.New("connection refused") }
	h := NewHealthHandler(dbCheck, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.Health(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database_status":"unhealthy"`)
}
