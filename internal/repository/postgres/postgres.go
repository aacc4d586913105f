package postgres

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage реализует интерфейс Storage для PostgreSQL
type PostgresStorage struct {
	db   *gorm.DB
	log  *zap.Logger
	node *snowflake.Node
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) (*PostgresStorage, error) {
	// ID кликов генерируются на стороне приложения
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &PostgresStorage{
		db:   db,
		log:  log,
		node: node,
	}, nil
}

// --- Profile Methods ---

// GetProfile получает активный профиль по username
func (s *PostgresStorage) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	var profile domain.Profile

	err := s.db.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, repository.ErrProfileNotFound
	}
	if err != nil {
		s.log.Error("failed to get profile", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// SaveProfile сохраняет новый профиль
func (s *PostgresStorage) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		s.log.Error("failed to save profile", zap.String("username", profile.Username), zap.Error(err))
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.log.Info("saved new profile", zap.String("username", profile.Username))
	return nil
}

// ListProfileLinks возвращает активные ссылки профиля
func (s *PostgresStorage) ListProfileLinks(ctx context.Context, profileID int64) ([]*domain.ShortLink, error) {
	var links []*domain.ShortLink

	err := s.db.WithContext(ctx).Where("profile_id = ? AND is_active = ?", profileID, true).
		Order("created_at DESC").Find(&links).Error
	if err != nil {
		s.log.Error("failed to list profile links", zap.Int64("profile_id", profileID), zap.Error(err))
		return nil, fmt.Errorf("failed to list profile links: %w", err)
	}

	return links, nil
}

// --- Link Methods ---

// GetShortLink получает активную ссылку по короткому коду
func (s *PostgresStorage) GetShortLink(ctx context.Context, shortCode string) (*domain.ShortLink, error) {
	var link domain.ShortLink

	err := s.db.WithContext(ctx).Where("short_code = ? AND is_active = ?", shortCode, true).First(&link).Error
	if err == gorm.ErrRecordNotFound {
		return nil, repository.ErrShortCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get short link", zap.String("short_code", shortCode), zap.Error(err))
		return nil, fmt.Errorf("failed to get short link: %w", err)
	}

	// Истекшая ссылка эквивалентна отсутствующей, даже если is_active = true
	if link.Expired(time.Now()) {
		return nil, repository.ErrShortCodeNotFound
	}

	return &link, nil
}

// SaveShortLink сохраняет новую ссылку
func (s *PostgresStorage) SaveShortLink(ctx context.Context, link *domain.ShortLink) error {
	var existing domain.ShortLink
	err := s.db.WithContext(ctx).Where("short_code = ?", link.ShortCode).First(&existing).Error
	if err == nil {
		return repository.ErrShortCodeExists
	}
	if err != gorm.ErrRecordNotFound {
		s.log.Error("failed to check short code existence", zap.String("short_code", link.ShortCode), zap.Error(err))
		return fmt.Errorf("failed to check short code: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		s.log.Error("failed to save short link", zap.String("short_code", link.ShortCode), zap.Error(err))
		return fmt.Errorf("failed to save short link: %w", err)
	}

	s.log.Info("saved new short link", zap.String("short_code", link.ShortCode))
	return nil
}

// DeactivateShortLink удаляет ссылку (мягкое удаление)
func (s *PostgresStorage) DeactivateShortLink(ctx context.Context, shortCode string) error {
	result := s.db.WithContext(ctx).Model(&domain.ShortLink{}).Where("short_code = ?", shortCode).Update("is_active", false)
	if result.Error != nil {
		s.log.Error("failed to deactivate short link", zap.String("short_code", shortCode), zap.Error(result.Error))
		return fmt.Errorf("failed to deactivate short link: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrShortCodeNotFound
	}

	s.log.Info("deactivated short link", zap.String("short_code", shortCode))
	return nil
}

// ShortCodeExists проверяет, существует ли короткий код
func (s *PostgresStorage) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.ShortLink{}).Where("short_code = ?", shortCode).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check short code existence", zap.String("short_code", shortCode), zap.Error(err))
		return false, fmt.Errorf("failed to check short code: %w", err)
	}

	return count > 0, nil
}

// ListShortCodes возвращает все известные короткие коды (для прогрева фильтров)
func (s *PostgresStorage) ListShortCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := s.db.WithContext(ctx).Model(&domain.ShortLink{}).Pluck("short_code", &codes).Error
	if err != nil {
		s.log.Error("failed to list short codes", zap.Error(err))
		return nil, fmt.Errorf("failed to list short codes: %w", err)
	}
	return codes, nil
}

// --- Analytics Methods ---

// RecordClick атомарно записывает клик: счетчик ссылки и строка аналитики
// обновляются в одной транзакции. Повторная отправка с тем же tracking_id
// отклоняется как дубликат.
func (s *PostgresStorage) RecordClick(ctx context.Context, shortCode string, click *domain.Click) error {
	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var link domain.ShortLink
	err := tx.Where("short_code = ? AND is_active = ?", shortCode, true).First(&link).Error
	if err == gorm.ErrRecordNotFound {
		tx.Rollback()
		return repository.ErrShortCodeNotFound
	}
	if err != nil {
		tx.Rollback()
		s.log.Error("failed to get short link for click recording", zap.String("short_code", shortCode), zap.Error(err))
		return fmt.Errorf("failed to get short link: %w", err)
	}

	// Идемпотентность по tracking_id
	if click.TrackingID != "" {
		var dup int64
		if err := tx.Model(&domain.Click{}).Where("tracking_id = ?", click.TrackingID).Count(&dup).Error; err != nil {
			tx.Rollback()
			s.log.Error("failed to check tracking id", zap.String("tracking_id", click.TrackingID), zap.Error(err))
			return fmt.Errorf("failed to check tracking id: %w", err)
		}
		if dup > 0 {
			tx.Rollback()
			return repository.ErrDuplicateClick
		}
	}

	err = tx.Model(&link).Update("click_count", gorm.Expr("click_count + 1")).Error
	if err != nil {
		tx.Rollback()
		s.log.Error("failed to update click count", zap.String("short_code", shortCode), zap.Error(err))
		return fmt.Errorf("failed to update click count: %w", err)
	}

	click.ID = s.node.Generate().Int64()
	click.LinkID = link.ID
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now()
	}

	if err := tx.Create(click).Error; err != nil {
		tx.Rollback()
		s.log.Error("failed to create click record", zap.String("short_code", shortCode), zap.Error(err))
		return fmt.Errorf("failed to create click: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Error("failed to commit click transaction", zap.String("short_code", shortCode), zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("recorded click",
		zap.String("short_code", shortCode),
		zap.String("device_type", click.DeviceType),
		zap.String("tracking_id", click.TrackingID))
	return nil
}

// GetClicksByDevice возвращает статистику кликов по типам устройств для ссылки
func (s *PostgresStorage) GetClicksByDevice(ctx context.Context, linkID int64) (map[string]int64, error) {
	var results []struct {
		DeviceType string `gorm:"column:device_type"`
		Count      int64  `gorm:"column:count"`
	}

	err := s.db.WithContext(ctx).
		Model(&domain.Click{}).
		Select("device_type, count(*) as count").
		Where("link_id = ?", linkID).
		Group("device_type").
		Find(&results).Error

	if err != nil {
		s.log.Error("failed to get clicks by device", zap.Int64("link_id", linkID), zap.Error(err))
		return nil, fmt.Errorf("failed to get clicks by device: %w", err)
	}

	clicksByDevice := make(map[string]int64)
	for _, result := range results {
		clicksByDevice[result.DeviceType] = result.Count
	}

	return clicksByDevice, nil
}
