package service

import (
	"Linkly-Backend/internal/config"
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"Linkly-Backend/pkg/random"
	"context"
	"fmt"
)

const maxRetries = 5

type ShortLinkService struct {
	storage repository.Storage
	config  *config.Shortener
}

func NewShortLink(storage repository.Storage, cfg *config.Shortener) *ShortLinkService {
	return &ShortLinkService{
		storage: storage,
		config:  cfg,
	}
}

// Create сохраняет ссылку с кастомным или сгенерированным коротким кодом
func (s *ShortLinkService) Create(ctx context.Context, link *domain.ShortLink, customCode *string) (string, error) {
	var code string
	if customCode != nil && *customCode != "" {
		code = *customCode
		exists, err := s.storage.ShortCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check custom code existence: %w", err)
		}
		if exists {
			return "", repository.ErrShortCodeExists
		}
	} else {
		for i := 0; ; i++ {
			if i == maxRetries {
				return "", fmt.Errorf("failed to generate a unique short code in %d attempts", maxRetries)
			}
			generated, err := random.NewRandomString(s.config.CodeLength)
			if err != nil {
				return "", fmt.Errorf("failed to generate short code: %w", err)
			}
			exists, err := s.storage.ShortCodeExists(ctx, generated)
			if err != nil {
				return "", fmt.Errorf("failed to check code existence: %w", err)
			}
			if !exists {
				code = generated
				break
			}
		}
	}

	link.ShortCode = code

	if err := s.storage.SaveShortLink(ctx, link); err != nil {
		return "", fmt.Errorf("failed to save short link: %w", err)
	}

	return code, nil
}

// Stats возвращает агрегированную статистику кликов по ссылке
func (s *ShortLinkService) Stats(ctx context.Context, shortCode string) (*domain.LinkStats, error) {
	link, err := s.storage.GetShortLink(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	byDevice, err := s.storage.GetClicksByDevice(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load click breakdown: %w", err)
	}

	return &domain.LinkStats{
		ShortCode:  link.ShortCode,
		ClickCount: link.ClickCount,
		ByDevice:   byDevice,
	}, nil
}
