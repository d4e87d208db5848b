package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ReactionService struct {
	repo  *mysql.ReactionRepository
	cache *redisrepo.ReactionCacheRepository
	lock  *redisrepo.DistLock
}

func NewReactionService(db *gorm.DB, rdb *goredis.Client) *ReactionService {
	return &ReactionService{
		repo:  &mysql.ReactionRepository{DB: db},
		cache: redisrepo.NewReactionCacheRepository(rdb),
		lock:  &redisrepo.DistLock{RDB: rdb},
	}
}

// Like 切换式点赞；写库成功后删计数缓存，交给读侧重建
func (s *ReactionService) Like(ctx context.Context, userID, scriptID uint64) (string, error) {
	return s.react(ctx, userID, scriptID, model.ReactionLike)
}

func (s *ReactionService) Dislike(ctx context.Context, userID, scriptID uint64) (string, error) {
	return s.react(ctx, userID, scriptID, model.ReactionDislike)
}

func (s *ReactionService) react(ctx context.Context, userID, scriptID uint64, kind int8) (string, error) {
	if userID == 0 || scriptID == 0 {
		return "", errors.New("invalid id")
	}
	result, err := s.repo.React(ctx, userID, scriptID, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	_ = s.cache.DeleteCounts(ctx, scriptID)
	return result, nil
}

func (s *ReactionService) Current(ctx context.Context, userID, scriptID uint64) (int8, error) {
	return s.repo.Current(ctx, userID, scriptID)
}

// Counts 缓存优先；miss时拿锁回源重建，拿不到锁短暂退避后再读一次，避免全体打库
func (s *ReactionService) Counts(ctx context.Context, userID, scriptID uint64) (int64, int64, error) {
	if likes, dislikes, ok, err := s.cache.GetCountsCached(ctx, scriptID); err == nil && ok {
		return likes, dislikes, nil
	}

	token := fmt.Sprintf("%d-%d-%d", userID, scriptID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, scriptID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, scriptID, token) }()

		// double check
		if likes, dislikes, ok, err := s.cache.GetCountsCached(ctx, scriptID); err == nil && ok {
			return likes, dislikes, nil
		}

		likes, dislikes, err := s.repo.GetCounts(ctx, scriptID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, ErrNotFound
			}
			return 0, 0, err
		}
		_ = s.cache.SetCounts(ctx, scriptID, likes, dislikes)
		return likes, dislikes, nil
	}

	time.Sleep(50 * time.Millisecond)
	if likes, dislikes, ok, err := s.cache.GetCountsCached(ctx, scriptID); err == nil && ok {
		return likes, dislikes, nil
	}
	return s.repo.GetCounts(ctx, scriptID)
}
