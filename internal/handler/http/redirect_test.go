package http

import (
	"Linkly-Backend/internal/analytics"
	"Linkly-Backend/internal/attribution"
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/geo"
	"Linkly-Backend/internal/repository/memory"
	"Linkly-Backend/internal/resolver"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubmitter struct {
	mu   sync.Mutex
	jobs []*analytics.ClickJob
	err  error
}

func (s *stubSubmitter) SubmitClick(job *analytics.ClickJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *stubSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func newTestHandler(t *testing.T, sub attribution.Submitter) (*ResolveHandler, *memory.MemStorage) {
	t.Helper()

	log := zap.NewNop()
	mem := memory.New()

	displayName := "Demo"
	require.NoError(t, mem.SaveProfile(context.Background(), &domain.Profile{
		Username:    "demo",
		DisplayName: &displayName,
	}))
	require.NoError(t, mem.SaveShortLink(context.Background(), &domain.ShortLink{
		ShortCode:   "abc123",
		OriginalURL: "https://example.com/landing",
		IsActive:    true,
	}))

	res := resolver.New(mem, nil, log)
	chain := geo.NewChain(nil, nil, time.Second, log)
	rec := attribution.NewRecorder(sub, nil, chain, log)

	return NewResolveHandler(res, rec, time.Second, log), mem
}

func TestHandleResolve_RedirectsShortCode(t *testing.T) {
	sub := &stubSubmitter{}
	h, _ := newTestHandler(t, sub)

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone) Safari/604.1")
	req.RemoteAddr = "203.0.113.7:51234"
	rr := httptest.NewRecorder()

	h.HandleResolve(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://example.com/landing", rr.Header().Get("Location"))

	// Атрибуция идет в фоне
	assert.Eventually(t, func() bool { return sub.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHandleResolve_RedirectsEvenWhenRecordingFails(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("queue full")}
	h, _ := newTestHandler(t, sub)

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	rr := httptest.NewRecorder()

	h.HandleResolve(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://example.com/landing", rr.Header().Get("Location"))
}

func TestHandleResolve_ReturnsProfileJSON(t *testing.T) {
	sub := &stubSubmitter{}
	h, _ := newTestHandler(t, sub)

	req := httptest.NewRequest(http.MethodGet, "/demo", nil)
	rr := httptest.NewRecorder()

	h.HandleResolve(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"demo"`)
	// Профиль — это не редирект, клик не записывается
	assert.Equal(t, 0, sub.count())
}

func TestHandleResolve_UnknownIdentifierIs404(t *testing.T) {
	sub := &stubSubmitter{}
	h, _ := newTestHandler(t, sub)

	req := httptest.NewRequest(http.MethodGet, "/nosuchthing", nil)
	rr := httptest.NewRecorder()

	h.HandleResolve(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, sub.count())
}

func TestHandleResolve_SystemPathsAreNotIdentifiers(t *testing.T) {
	sub := &stubSubmitter{}
	h, _ := newTestHandler(t, sub)

	for _, path := range []string{"/", "/api/anything", "/health", "/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		h.HandleResolve(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, "path %s", path)
	}
}

func TestExtractIPAddress(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "x_forwarded_for_first_entry",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remoteAddr: "10.0.0.2:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "x_real_ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "10.0.0.2:1234",
			want:       "203.0.113.8",
		},
		{
			name:       "x_client_ip",
			headers:    map[string]string{"X-Client-IP": "203.0.113.9"},
			remoteAddr: "10.0.0.2:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "remote_addr_fallback",
			remoteAddr: "203.0.113.10:4567",
			want:       "203.0.113.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractIPAddress(req))
		})
	}
}

func TestClientPosition(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Client-Position", "51.5074, -0.1278")

	pos := clientPosition(req)
	require.NotNil(t, pos)

	lat, lng, err := pos.Position(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 51.5074, lat)
	assert.Equal(t, -0.1278, lng)

	req.Header.Set("X-Client-Position", "garbage")
	assert.Nil(t, clientPosition(req))

	req.Header.Del("X-Client-Position")
	assert.Nil(t, clientPosition(req))
}
