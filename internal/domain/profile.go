package domain

import "time"

// Profile представляет публичную страницу пользователя (link-in-bio)
type Profile struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Username    string    `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	DisplayName *string   `gorm:"column:display_name;size:100" json:"display_name,omitempty"`
	Bio         *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	AvatarURL   *string   `gorm:"column:avatar_url;size:500" json:"avatar_url,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Links []ShortLink `gorm:"foreignKey:ProfileID" json:"links,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Profile) TableName() string {
	return "profiles"
}
