package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 浏览去重窗口与会话时长一致：窗口过期后再次访问重新计数
const (
	ViewSeenPrefix = "view:seen"
	ViewSeenTTL    = 30 * time.Minute
)

type ViewRepository struct {
	RDB *redis.Client
}

// MarkViewed 首次返回true，窗口内重复访问返回false
func (r *ViewRepository) MarkViewed(ctx context.Context, userID, scriptID uint64) (bool, error) {
	key := fmt.Sprintf("%s:%d:%d", ViewSeenPrefix, userID, scriptID)
	return r.RDB.SetNX(ctx, key, 1, ViewSeenTTL).Result()
}
