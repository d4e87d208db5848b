package service

import (
	"context"
	"testing"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionToggleAndSwitch(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewReactionService(db, rdb)

	author := makeUser(t, db, "likedauthor", model.RoleUser, model.RankNone)
	script := seedApproved(t, db, author, "reaction target")
	fan := makeUser(t, db, "fan", model.RoleUser, model.RankNone)

	reload := func() model.Script {
		var s model.Script
		require.NoError(t, db.First(&s, script.ID).Error)
		return s
	}

	result, err := svc.Like(context.Background(), fan.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, mysql.ReactionAdded, result)
	s := reload()
	assert.Equal(t, int64(1), s.LikeCount)
	assert.Equal(t, int64(0), s.DislikeCount)

	// 同向重复点按取消
	result, err = svc.Like(context.Background(), fan.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, mysql.ReactionRemoved, result)
	s = reload()
	assert.Equal(t, int64(0), s.LikeCount)

	// like后改dislike：正好一加一减
	_, err = svc.Like(context.Background(), fan.ID, script.ID)
	require.NoError(t, err)
	result, err = svc.Dislike(context.Background(), fan.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, mysql.ReactionSwitched, result)
	s = reload()
	assert.Equal(t, int64(0), s.LikeCount)
	assert.Equal(t, int64(1), s.DislikeCount)

	kind, err := svc.Current(context.Background(), fan.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, int8(model.ReactionDislike), kind)

	_, err = svc.Like(context.Background(), fan.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReactionCountsCacheRebuild(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewReactionService(db, rdb)

	author := makeUser(t, db, "cachedauthor", model.RoleUser, model.RankNone)
	script := seedApproved(t, db, author, "cached target")
	a := makeUser(t, db, "reader_a", model.RoleUser, model.RankNone)
	b := makeUser(t, db, "reader_b", model.RoleUser, model.RankNone)

	_, err := svc.Like(context.Background(), a.ID, script.ID)
	require.NoError(t, err)
	_, err = svc.Dislike(context.Background(), b.ID, script.ID)
	require.NoError(t, err)

	likes, dislikes, err := svc.Counts(context.Background(), a.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(1), dislikes)

	// 第二次读命中缓存，结果一致
	likes, dislikes, err = svc.Counts(context.Background(), a.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(1), dislikes)

	// 写后失效，再读重建
	_, err = svc.Like(context.Background(), b.ID, script.ID)
	require.NoError(t, err)
	likes, dislikes, err = svc.Counts(context.Background(), a.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)
	assert.Equal(t, int64(0), dislikes)
}
