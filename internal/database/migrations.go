package database

import (
	"Linkly-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Порядок миграций важен из-за внешних ключей
	models := []interface{}{
		&domain.Profile{},   // Сначала профили
		&domain.ShortLink{}, // Ссылки (зависят от профилей)
		&domain.Click{},     // Клики (зависят от ссылок)
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Info("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData заполняет базу данных демонстрационными данными
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	var count int64
	db.Model(&domain.Profile{}).Count(&count)
	if count > 0 {
		log.Info("profiles already exist, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	profile := domain.Profile{
		Username:    "demo",
		DisplayName: toString("Demo Profile"),
		Bio:         toString("A sample link-in-bio page"),
		IsActive:    true,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Error("failed to seed profile", zap.Error(err))
		return fmt.Errorf("failed to seed profile: %w", err)
	}

	links := []domain.ShortLink{
		{
			ProfileID:   &profile.ID,
			ShortCode:   "github",
			OriginalURL: "https://github.com",
			Title:       toString("GitHub"),
			IsActive:    true,
		},
		{
			ProfileID:   &profile.ID,
			ShortCode:   "docs01",
			OriginalURL: "https://pkg.go.dev",
			Title:       toString("Go Packages"),
			IsActive:    true,
		},
	}
	if err := db.Create(&links).Error; err != nil {
		log.Error("failed to seed short links", zap.Error(err))
		return fmt.Errorf("failed to seed short links: %w", err)
	}

	log.Info("database seeding completed successfully",
		zap.String("profile", profile.Username),
		zap.Int("links_created", len(links)))
	return nil
}

// toString возвращает указатель на string - хелпер для nullable полей
func toString(val string) *string {
	return &val
}
