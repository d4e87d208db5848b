package model

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	RankNone     = ""
	RankVerified = "verified"
	RankPro      = "pro"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Username  string `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Avatar    string `gorm:"size:255" json:"avatar"`
	Role      string `gorm:"size:16;not null;default:'user'" json:"role"`
	Rank      string `gorm:"size:16;not null;default:''" json:"rank"`
	Balance   int64  `gorm:"not null;default:0" json:"balance"`
	Bio       string `gorm:"type:text" json:"bio"`
	Location  string `gorm:"size:128" json:"location"`
	Website   string `gorm:"size:255" json:"website"`
	Twitter   string `gorm:"size:64" json:"twitter"`
	Github    string `gorm:"size:64" json:"github"`
	Discord   string `gorm:"size:64" json:"discord"`
	CreatedAt time.Time `json:"joinedAt"`
	UpdatedAt time.Time `json:"-"`
}

// IsModerator admin也算moderator
func (u *User) IsModerator() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVerified verified/pro用户跳过审核
func (u *User) IsVerified() bool {
	return u.Rank == RankVerified || u.Rank == RankPro
}
