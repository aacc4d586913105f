package repository

import (
	"Linkly-Backend/internal/domain"
	"context"
	"errors"
)

var (
	ErrShortCodeNotFound = errors.New("short code not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrShortCodeExists   = errors.New("short code already exists")
	ErrDuplicateClick    = errors.New("click already recorded for tracking id")
)

type Storage interface {
	// Profile methods
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	ListProfileLinks(ctx context.Context, profileID int64) ([]*domain.ShortLink, error)

	// Link methods
	GetShortLink(ctx context.Context, shortCode string) (*domain.ShortLink, error)
	SaveShortLink(ctx context.Context, link *domain.ShortLink) error
	DeactivateShortLink(ctx context.Context, shortCode string) error
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
	ListShortCodes(ctx context.Context) ([]string, error)

	// Analytics methods
	RecordClick(ctx context.Context, shortCode string, click *domain.Click) error
	GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error)
}
