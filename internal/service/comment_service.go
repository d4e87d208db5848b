package service

import (
	"context"
	"errors"
	"strings"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CommentService struct {
	repo    *mysql.CommentRepository
	scripts *mysql.ScriptRepository
	users   *mysql.UserRepository
	rCool   *redisrepo.CooldownRepository
}

func NewCommentService(db *gorm.DB, rdb *goredis.Client) *CommentService {
	return &CommentService{
		repo:    &mysql.CommentRepository{DB: db},
		scripts: &mysql.ScriptRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		rCool:   &redisrepo.CooldownRepository{RDB: rdb},
	}
}

// Comment 发表评论。作者名/头像/rank在此刻冻结为快照；30秒冷却
func (s *CommentService) Comment(ctx context.Context, userID, scriptID uint64, content string) (*model.ScriptComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingField
	}

	if _, err := s.scripts.FindApprovedByID(ctx, scriptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	remaining, err := s.rCool.Remaining(ctx, redisrepo.CooldownScopeComment, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, &CooldownError{Scope: redisrepo.CooldownScopeComment, Remaining: remaining}
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	comment := &model.ScriptComment{
		ScriptID:   scriptID,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		UserRank:   user.Rank,
		Content:    content,
	}
	if err = s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err = s.rCool.Arm(ctx, redisrepo.CooldownScopeComment, userID, redisrepo.CommentCooldown); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByScript(ctx context.Context, scriptID uint64) ([]model.ScriptComment, error) {
	return s.repo.ListByScript(ctx, scriptID)
}
