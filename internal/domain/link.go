package domain

import "time"

// ShortLink представляет сокращенную ссылку
type ShortLink struct {
	ID          int64      `gorm:"primaryKey;column:id" json:"id"`
	ProfileID   *int64     `gorm:"column:profile_id;index" json:"profile_id,omitempty"`
	ShortCode   string     `gorm:"column:short_code;size:50;not null;uniqueIndex" json:"short_code"`
	OriginalURL string     `gorm:"column:original_url;size:2048;not null" json:"original_url"`
	Title       *string    `gorm:"column:title;size:200" json:"title,omitempty"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	ClickCount  int64      `gorm:"column:click_count;not null;default:0" json:"click_count"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (ShortLink) TableName() string {
	return "short_links"
}

// Expired сообщает, истек ли срок действия ссылки на момент now
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// LinkStats агрегированная статистика кликов по ссылке
type LinkStats struct {
	ShortCode  string           `json:"short_code"`
	ClickCount int64            `json:"click_count"`
	ByDevice   map[string]int64 `json:"by_device"`
}
