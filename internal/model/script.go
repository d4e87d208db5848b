package model

import "time"

const (
	ScriptStatusPending  = 0
	ScriptStatusApproved = 1
)

const (
	CategoryFree      = "free"
	CategoryPaid      = "paid"
	CategoryKeySystem = "key-system"
)

type Script struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:200;not null" json:"name"`
	Description  string `gorm:"type:text;not null" json:"description"`
	Code         string `gorm:"type:mediumtext;not null" json:"code"`
	Category     string `gorm:"size:16;not null" json:"category"`
	Thumbnail    string `gorm:"type:text;not null" json:"thumbnail"`
	Links        string `gorm:"type:json" json:"-"` // JSON数组，仅verified/pro作者保留
	AuthorID     uint64 `gorm:"not null;index:idx_author_time" json:"authorId"`
	AuthorName   string `gorm:"size:32;not null" json:"author"`
	AuthorAvatar string `gorm:"size:255" json:"authorAvatar"`
	AuthorRank   string `gorm:"size:16;not null;default:''" json:"authorRank"`
	Status       int    `gorm:"not null;default:0;index:idx_status_time,priority:1" json:"-"` // 0=pending 1=approved
	ApprovedBy   uint64 `gorm:"not null;default:0" json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	Views        int64   `gorm:"not null;default:0" json:"views"`
	Downloads    int64   `gorm:"not null;default:0" json:"downloads"`
	LikeCount    int64   `gorm:"not null;default:0" json:"likes"`
	DislikeCount int64   `gorm:"not null;default:0" json:"dislikes"`
	Rating       float64 `gorm:"not null;default:0" json:"rating"`
	RatingCount  int64   `gorm:"not null;default:0" json:"ratingCount"`
	CreatedAt    time.Time `gorm:"index:idx_status_time,priority:2,sort:desc;index:idx_author_time" json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

const (
	ReactionLike    = 1
	ReactionDislike = 2
)

// ScriptReaction 一个用户对一个脚本至多一条记录
type ScriptReaction struct {
	ID        uint64 `gorm:"primaryKey"`
	ScriptID  uint64 `gorm:"not null;index;uniqueIndex:uk_script_user_reaction"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_script_user_reaction"`
	Kind      int8   `gorm:"not null"` // 1=like 2=dislike
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ScriptReaction) TableName() string { return "script_reactions" }

type ScriptRating struct {
	ID        uint64 `gorm:"primaryKey"`
	ScriptID  uint64 `gorm:"not null;index;uniqueIndex:uk_script_user_rating"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_script_user_rating"`
	Score     int    `gorm:"not null"` // 1~5
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ScriptRating) TableName() string { return "script_ratings" }

// ScriptComment 作者信息在创建时冻结快照
type ScriptComment struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	ScriptID   uint64 `gorm:"not null;index" json:"scriptId"`
	UserID     uint64 `gorm:"not null" json:"userId"`
	Username   string `gorm:"size:32;not null" json:"username"`
	UserAvatar string `gorm:"size:255" json:"userAvatar"`
	UserRank   string `gorm:"size:16;not null;default:''" json:"userRank"`
	Content    string `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

func (ScriptComment) TableName() string { return "script_comments" }

// SavedScript 保存的是快照副本，不随原脚本更新
type SavedScript struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_script_saved"`
	ScriptID  uint64 `gorm:"not null;uniqueIndex:uk_user_script_saved"`
	Snapshot  string `gorm:"type:json;not null"`
	CreatedAt time.Time
}

func (SavedScript) TableName() string { return "saved_scripts" }
