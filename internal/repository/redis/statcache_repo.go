package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ReactCntTTL       = 24 * time.Hour
	LockTTL           = 300 * time.Millisecond
	ReactCntKeyPrefix = "react:cnt:script" // 缓存某个脚本的点赞/点踩计数
	LockKeyPrefix     = "lock:react:script"
)

// ReactionCacheRepository 读多写少的计数缓存；写侧删键，读侧加锁重建
type ReactionCacheRepository struct {
	RDB *redis.Client
	ttl time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewReactionCacheRepository(rdb *redis.Client) *ReactionCacheRepository {
	return &ReactionCacheRepository{RDB: rdb, ttl: ReactCntTTL}
}

func (r *ReactionCacheRepository) key(scriptID uint64) string {
	return fmt.Sprintf("%s:%d", ReactCntKeyPrefix, scriptID)
}

// GetCountsCached 命中返回(like, dislike, true)
func (r *ReactionCacheRepository) GetCountsCached(ctx context.Context, scriptID uint64) (int64, int64, bool, error) {
	vals, err := r.RDB.HGetAll(ctx, r.key(scriptID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, false, nil
		}
		return 0, 0, false, err
	}
	if len(vals) == 0 {
		return 0, 0, false, nil
	}
	likes, _ := strconv.ParseInt(vals["likes"], 10, 64)
	dislikes, _ := strconv.ParseInt(vals["dislikes"], 10, 64)
	return likes, dislikes, true, nil
}

// SetCounts 回填计数
func (r *ReactionCacheRepository) SetCounts(ctx context.Context, scriptID uint64, likes, dislikes int64) error {
	key := r.key(scriptID)
	if err := r.RDB.HSet(ctx, key, "likes", likes, "dislikes", dislikes).Err(); err != nil {
		return err
	}
	return r.RDB.Expire(ctx, key, r.ttl).Err()
}

// DeleteCounts 写后删键，交给读侧重建
func (r *ReactionCacheRepository) DeleteCounts(ctx context.Context, scriptID uint64) error {
	if err := r.RDB.Del(ctx, r.key(scriptID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, scriptID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, scriptID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, scriptID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, scriptID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
