package model

import "time"

// Executor 管理员维护的第三方工具列表，rating为人工录入
type Executor struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:64;not null" json:"name"`
	Description    string  `gorm:"type:text;not null" json:"description"`
	Rating         float64 `gorm:"not null;default:0" json:"rating"`
	DownloadsLabel string  `gorm:"size:32" json:"downloads"`
	Status         string  `gorm:"size:32" json:"status"`
	Features       string  `gorm:"type:json" json:"-"` // JSON字符串数组
	DownloadURL    string  `gorm:"size:255;not null" json:"downloadUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
