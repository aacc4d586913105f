// Package cached decorates a repository.Storage with a Redis cache-aside
// layer and a Bloom negative filter for short codes, keeping the redirect hot
// path off the database for repeat lookups and definite misses.
package cached

import (
	"Linkly-Backend/internal/cache"
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"context"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"
)

const (
	bloomCapacity = 100_000
	bloomFPRate   = 0.01
)

// Storage wraps another repository.Storage. Cache failures are logged and
// fall through to the inner storage, never surfaced to callers.
type Storage struct {
	inner repository.Storage
	cache *cache.RedisCache
	log   *zap.Logger

	mu     sync.RWMutex
	filter *bloom.BloomFilter // nil until warmed
}

// New creates the caching decorator.
func New(inner repository.Storage, redisCache *cache.RedisCache, log *zap.Logger) *Storage {
	return &Storage{
		inner: inner,
		cache: redisCache,
		log:   log,
	}
}

// Warm loads all known short codes into the Bloom filter. Until Warm has
// succeeded the filter is skipped entirely, because a false negative would
// turn an existing link into a 404.
func (s *Storage) Warm(ctx context.Context) error {
	codes, err := s.inner.ListShortCodes(ctx)
	if err != nil {
		return err
	}

	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPRate)
	for _, code := range codes {
		filter.AddString(code)
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	s.log.Info("bloom filter warmed", zap.Int("short_codes", len(codes)))
	return nil
}

func (s *Storage) mightExist(shortCode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filter == nil {
		return true
	}
	return s.filter.TestString(shortCode)
}

func (s *Storage) rememberCode(shortCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != nil {
		s.filter.AddString(shortCode)
	}
}

// --- Profile Methods ---

func (s *Storage) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	if s.cache != nil {
		profile, err := s.cache.GetProfile(ctx, username)
		if err != nil {
			s.log.Warn("profile cache read failed", zap.String("username", username), zap.Error(err))
		} else if profile != nil {
			return profile, nil
		}
	}

	profile, err := s.inner.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, profile); err != nil {
			s.log.Warn("profile cache write failed", zap.String("username", username), zap.Error(err))
		}
	}
	return profile, nil
}

func (s *Storage) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	return s.inner.SaveProfile(ctx, profile)
}

func (s *Storage) ListProfileLinks(ctx context.Context, profileID int64) ([]*domain.ShortLink, error) {
	return s.inner.ListProfileLinks(ctx, profileID)
}

// --- Link Methods ---

func (s *Storage) GetShortLink(ctx context.Context, shortCode string) (*domain.ShortLink, error) {
	if !s.mightExist(shortCode) {
		return nil, repository.ErrShortCodeNotFound
	}

	if s.cache != nil {
		link, err := s.cache.GetShortLink(ctx, shortCode)
		if err != nil {
			s.log.Warn("link cache read failed", zap.String("short_code", shortCode), zap.Error(err))
		} else if link != nil {
			// Expiry is re-checked on every hit; the cached row may outlive it
			if link.Expired(time.Now()) {
				return nil, repository.ErrShortCodeNotFound
			}
			return link, nil
		}
	}

	link, err := s.inner.GetShortLink(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetShortLink(ctx, link); err != nil {
			s.log.Warn("link cache write failed", zap.String("short_code", shortCode), zap.Error(err))
		}
	}
	return link, nil
}

func (s *Storage) SaveShortLink(ctx context.Context, link *domain.ShortLink) error {
	if err := s.inner.SaveShortLink(ctx, link); err != nil {
		return err
	}
	s.rememberCode(link.ShortCode)
	return nil
}

func (s *Storage) DeactivateShortLink(ctx context.Context, shortCode string) error {
	if err := s.inner.DeactivateShortLink(ctx, shortCode); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteShortLink(ctx, shortCode); err != nil {
			s.log.Warn("link cache invalidation failed", zap.String("short_code", shortCode), zap.Error(err))
		}
	}
	return nil
}

func (s *Storage) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	return s.inner.ShortCodeExists(ctx, shortCode)
}

func (s *Storage) ListShortCodes(ctx context.Context) ([]string, error) {
	return s.inner.ListShortCodes(ctx)
}

// --- Analytics Methods ---

func (s *Storage) RecordClick(ctx context.Context, shortCode string, click *domain.Click) error {
	// Always a database write; the cached click_count is allowed to lag
	return s.inner.RecordClick(ctx, shortCode, click)
}

func (s *Storage) GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error) {
	return s.inner.GetClicksByDevice(ctx, linkID)
}
