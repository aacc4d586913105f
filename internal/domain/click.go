package domain

import "time"

// Click представляет клик по сокращенной ссылке с атрибуцией
type Click struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement:false" json:"id"`
	LinkID      int64     `gorm:"column:link_id;not null;index" json:"link_id"`
	TrackingID  string    `gorm:"column:tracking_id;size:64;not null;uniqueIndex" json:"tracking_id"`
	DeviceType  string    `gorm:"column:device_type;size:10;not null" json:"device_type"` // 'desktop', 'mobile', 'tablet'
	Browser     string    `gorm:"column:browser;size:50;not null" json:"browser"`
	OS          *string   `gorm:"column:os;size:50" json:"os,omitempty"`
	CountryCode *string   `gorm:"column:country_code;size:2" json:"country_code,omitempty"` // ISO код страны
	Lat         *float64  `gorm:"column:lat" json:"lat,omitempty"`
	Lng         *float64  `gorm:"column:lng" json:"lng,omitempty"`
	HashedIP    *string   `gorm:"column:hashed_ip;size:16" json:"hashed_ip,omitempty"`
	UserAgent   *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	Referer     *string   `gorm:"column:referer;size:500" json:"referer,omitempty"`
	ClickedAt   time.Time `gorm:"column:clicked_at;autoCreateTime;index" json:"clicked_at"`

	// Relationships
	Link *ShortLink `gorm:"foreignKey:LinkID" json:"link,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Click) TableName() string {
	return "clicks"
}
