package memory

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"context"
	"sync"
	"time"
)

type MemStorage struct {
	mu          sync.RWMutex
	profiles    map[string]*domain.Profile
	links       map[string]*domain.ShortLink
	clicks      []*domain.Click
	trackingIDs map[string]bool
	idCounter   int64
}

func New() *MemStorage {
	return &MemStorage{
		profiles:    make(map[string]*domain.Profile),
		links:       make(map[string]*domain.ShortLink),
		trackingIDs: make(map[string]bool),
	}
}

// --- Profile Methods ---

func (s *MemStorage) GetProfile(_ context.Context, username string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[username]
	if !ok || !profile.IsActive {
		return nil, repository.ErrProfileNotFound
	}
	return profile, nil
}

func (s *MemStorage) SaveProfile(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == 0 {
		s.idCounter++
		profile.ID = s.idCounter
	}
	s.profiles[profile.Username] = profile
	return nil
}

func (s *MemStorage) ListProfileLinks(_ context.Context, profileID int64) ([]*domain.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var links []*domain.ShortLink
	for _, link := range s.links {
		if link.ProfileID != nil && *link.ProfileID == profileID && link.IsActive {
			links = append(links, link)
		}
	}
	return links, nil
}

// --- Link Methods ---

func (s *MemStorage) GetShortLink(_ context.Context, shortCode string) (*domain.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[shortCode]
	if !ok || !link.IsActive {
		return nil, repository.ErrShortCodeNotFound
	}
	if link.Expired(time.Now()) {
		return nil, repository.ErrShortCodeNotFound
	}
	return link, nil
}

func (s *MemStorage) SaveShortLink(_ context.Context, link *domain.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.links[link.ShortCode]; exists {
		return repository.ErrShortCodeExists
	}
	if link.ID == 0 {
		s.idCounter++
		link.ID = s.idCounter
	}
	s.links[link.ShortCode] = link
	return nil
}

func (s *MemStorage) DeactivateShortLink(_ context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[shortCode]
	if !ok {
		return repository.ErrShortCodeNotFound
	}
	link.IsActive = false
	return nil
}

func (s *MemStorage) ShortCodeExists(_ context.Context, shortCode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.links[shortCode]
	return ok, nil
}

func (s *MemStorage) ListShortCodes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.links))
	for code := range s.links {
		codes = append(codes, code)
	}
	return codes, nil
}

// --- Analytics Methods ---

func (s *MemStorage) RecordClick(_ context.Context, shortCode string, click *domain.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[shortCode]
	if !ok || !link.IsActive {
		return repository.ErrShortCodeNotFound
	}
	if click.TrackingID != "" {
		if s.trackingIDs[click.TrackingID] {
			return repository.ErrDuplicateClick
		}
		s.trackingIDs[click.TrackingID] = true
	}

	link.ClickCount++
	s.idCounter++
	click.ID = s.idCounter
	click.LinkID = link.ID
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now()
	}
	s.clicks = append(s.clicks, click)
	return nil
}

func (s *MemStorage) GetClicksByDevice(_ context.Context, linkID int64) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clicksByDevice := make(map[string]int64)
	for _, click := range s.clicks {
		if click.LinkID == linkID {
			clicksByDevice[click.DeviceType]++
		}
	}
	return clicksByDevice, nil
}

// Clicks возвращает снимок записанных кликов (для тестов)
func (s *MemStorage) Clicks() []*domain.Click {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Click, len(s.clicks))
	copy(out, s.clicks)
	return out
}
