package service

import (
	"Linkly-Backend/internal/config"
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of repository.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockStorage) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockStorage) ListProfileLinks(ctx context.Context, profileID int64) ([]*domain.ShortLink, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShortLink), args.Error(1)
}

func (m *MockStorage) GetShortLink(ctx context.Context, shortCode string) (*domain.ShortLink, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortLink), args.Error(1)
}

func (m *MockStorage) SaveShortLink(ctx context.Context, link *domain.ShortLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStorage) DeactivateShortLink(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

func (m *MockStorage) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ListShortCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) RecordClick(ctx context.Context, shortCode string, click *domain.Click) error {
	args := m.Called(ctx, shortCode, click)
	return args.Error(0)
}

func (m *MockStorage) GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func newTestService(storage repository.Storage) *ShortLinkService {
	return NewShortLink(storage, &config.Shortener{CodeLength: 6, BaseURL: "http://localhost:8080"})
}

func TestShortLinkService_Create_CustomCode(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	mockStorage.On("ShortCodeExists", mock.Anything, "my-code").Return(false, nil)
	mockStorage.On("SaveShortLink", mock.Anything, mock.AnythingOfType("*domain.ShortLink")).Return(nil)

	custom := "my-code"
	code, err := svc.Create(context.Background(), &domain.ShortLink{OriginalURL: "https://example.com"}, &custom)

	require.NoError(t, err)
	assert.Equal(t, "my-code", code)
	mockStorage.AssertExpectations(t)
}

func TestShortLinkService_Create_CustomCodeConflict(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	mockStorage.On("ShortCodeExists", mock.Anything, "taken").Return(true, nil)

	custom := "taken"
	_, err := svc.Create(context.Background(), &domain.ShortLink{OriginalURL: "https://example.com"}, &custom)

	assert.ErrorIs(t, err, repository.ErrShortCodeExists)
	mockStorage.AssertNotCalled(t, "SaveShortLink", mock.Anything, mock.Anything)
}

func TestShortLinkService_Create_GeneratedCode(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	mockStorage.On("ShortCodeExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	mockStorage.On("SaveShortLink", mock.Anything, mock.AnythingOfType("*domain.ShortLink")).Return(nil)

	link := &domain.ShortLink{OriginalURL: "https://example.com"}
	code, err := svc.Create(context.Background(), link, nil)

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, code, link.ShortCode)
	mockStorage.AssertExpectations(t)
}

func TestShortLinkService_Create_GenerationExhausted(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	// Every generated candidate collides
	mockStorage.On("ShortCodeExists", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)

	_, err := svc.Create(context.Background(), &domain.ShortLink{OriginalURL: "https://example.com"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate a unique short code")
	mockStorage.AssertNotCalled(t, "SaveShortLink", mock.Anything, mock.Anything)
	mockStorage.AssertNumberOfCalls(t, "ShortCodeExists", 5)
}

func TestShortLinkService_Stats(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	mockStorage.On("GetShortLink", mock.Anything, "abc123").Return(&domain.ShortLink{
		ID:         7,
		ShortCode:  "abc123",
		ClickCount: 3,
	}, nil)
	mockStorage.On("GetClicksByDevice", mock.Anything, int64(7)).Return(map[string]int64{
		"mobile":  2,
		"desktop": 1,
	}, nil)

	stats, err := svc.Stats(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ClickCount)
	assert.Equal(t, int64(2), stats.ByDevice["mobile"])
	mockStorage.AssertExpectations(t)
}

func TestShortLinkService_Stats_NotFound(t *testing.T) {
	mockStorage := &MockStorage{}
	svc := newTestService(mockStorage)

	mockStorage.On("GetShortLink", mock.Anything, "missing").Return(nil, repository.ErrShortCodeNotFound)

	_, err := svc.Stats(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrShortCodeNotFound)
}
