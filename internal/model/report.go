package model

import "time"

// Report 全局举报队列，moderator处理后直接删除
type Report struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	ReporterID   uint64 `gorm:"not null;index" json:"userId"`
	ReporterName string `gorm:"size:32;not null" json:"username"`
	ScriptID     uint64 `gorm:"not null;index" json:"scriptId"`
	ScriptName   string `gorm:"size:200;not null" json:"scriptName"`
	Reason       string `gorm:"type:text;not null" json:"reason"`
	CreatedAt    time.Time `json:"createdAt"`
}
