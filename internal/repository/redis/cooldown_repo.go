package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 防刷冷却窗口
const (
	CooldownScopeUpload  = "upload"
	CooldownScopeComment = "comment"
	CooldownScopeReport  = "report"

	UploadCooldown  = 5 * time.Minute
	CommentCooldown = 30 * time.Second
	ReportCooldown  = 5 * time.Minute

	cooldownKeyPrefix = "cooldown"
)

type CooldownRepository struct {
	RDB *redis.Client
}

func (r *CooldownRepository) key(scope string, userID uint64) string {
	return fmt.Sprintf("%s:%s:%d", cooldownKeyPrefix, scope, userID)
}

// Remaining 剩余冷却时间；无键返回0
func (r *CooldownRepository) Remaining(ctx context.Context, scope string, userID uint64) (time.Duration, error) {
	ttl, err := r.RDB.PTTL(ctx, r.key(scope, userID)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		// -1无过期 -2不存在，均视为未处于冷却
		return 0, nil
	}
	return ttl, nil
}

// Arm 动作成功后开启冷却窗口
func (r *CooldownRepository) Arm(ctx context.Context, scope string, userID uint64, ttl time.Duration) error {
	return r.RDB.Set(ctx, r.key(scope, userID), time.Now().Unix(), ttl).Err()
}
