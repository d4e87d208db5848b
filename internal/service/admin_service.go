package service

import (
	"context"
	"errors"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AdminService struct {
	users *mysql.UserRepository
}

func NewAdminService(db *gorm.DB, _ *goredis.Client) *AdminService {
	return &AdminService{
		users: &mysql.UserRepository{DB: db},
	}
}

func (s *AdminService) ListUsers(ctx context.Context, page, size int) ([]model.User, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	return s.users.List((page-1)*size, size)
}

// UpdateRole 授予admin需要操作者本身是admin；moderator只能在user/moderator间调整
func (s *AdminService) UpdateRole(ctx context.Context, actorRole string, targetID uint64, role string) (*model.User, error) {
	switch role {
	case model.RoleUser, model.RoleModerator, model.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}
	if role == model.RoleAdmin && actorRole != model.RoleAdmin {
		return nil, ErrNoPermission
	}
	if _, err := s.users.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.UpdateRole(targetID, role); err != nil {
		return nil, err
	}
	return s.users.FindByID(targetID)
}

// UpdateRank rank变化即时生效，返回更新后的用户供前端刷新会话快照
func (s *AdminService) UpdateRank(ctx context.Context, targetID uint64, rank string) (*model.User, error) {
	switch rank {
	case model.RankNone, model.RankVerified, model.RankPro:
	default:
		return nil, ErrInvalidRank
	}
	if _, err := s.users.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.UpdateRank(targetID, rank); err != nil {
		return nil, err
	}
	return s.users.FindByID(targetID)
}

// AddBalance 只允许正数充值，余额单一来源在users表
func (s *AdminService) AddBalance(ctx context.Context, targetID uint64, amount int64) (*model.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.users.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.AddBalance(targetID, amount); err != nil {
		return nil, err
	}
	return s.users.FindByID(targetID)
}
