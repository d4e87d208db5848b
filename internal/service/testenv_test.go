package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"Nexus_Protocols/internal/model"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// 每个用例独立的内存库，表结构与生产一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Script{},
		&model.ScriptReaction{},
		&model.ScriptRating{},
		&model.ScriptComment{},
		&model.SavedScript{},
		&model.Report{},
		&model.Executor{},
		&model.ModerationOutbox{},
	))
	return db
}

func newTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func makeUser(t *testing.T, db *gorm.DB, username, role, rank string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    username + "@test.dev",
		Username: username,
		Password: "not-a-real-hash",
		Avatar:   DefaultAvatar(username),
		Role:     role,
		Rank:     rank,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func sampleSubmission(name string) ScriptSubmission {
	return ScriptSubmission{
		Name:        name,
		Description: "auto farm with esp",
		Code:        "print('loaded')",
		Category:    model.CategoryFree,
		Thumbnail:   "thumb.png",
	}
}

func seedApproved(t *testing.T, db *gorm.DB, author *model.User, name string) *model.Script {
	t.Helper()
	script := &model.Script{
		Name:         name,
		Description:  "seeded",
		Code:         "print('x')",
		Category:     model.CategoryFree,
		Thumbnail:    "thumb.png",
		Links:        "[]",
		AuthorID:     author.ID,
		AuthorName:   author.Username,
		AuthorAvatar: author.Avatar,
		AuthorRank:   author.Rank,
		Status:       model.ScriptStatusApproved,
	}
	require.NoError(t, db.Create(script).Error)
	return script
}
