package service

import (
	"context"
	"testing"

	"Nexus_Protocols/internal/model"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "uploader", model.RoleUser, model.RankNone)

	sub := sampleSubmission("incomplete")
	sub.Thumbnail = ""
	_, err := svc.Submit(context.Background(), author.ID, sub)
	assert.ErrorIs(t, err, ErrMissingField)

	sub = sampleSubmission("bad category")
	sub.Category = "premium"
	_, err = svc.Submit(context.Background(), author.ID, sub)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Submit(context.Background(), 9999, sampleSubmission("ghost author"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitPendingByDefaultAutoApprovedForRanked(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewScriptService(db, rdb)

	plain := makeUser(t, db, "plain", model.RoleUser, model.RankNone)
	pro := makeUser(t, db, "proauthor", model.RoleUser, model.RankPro)

	sub := sampleSubmission("plain script")
	sub.Links = []string{"https://example.com/hub"}
	script, err := svc.Submit(context.Background(), plain.ID, sub)
	require.NoError(t, err)
	assert.Equal(t, model.ScriptStatusPending, script.Status)
	// 无rank作者的外链被丢弃
	assert.Equal(t, "[]", script.Links)

	sub = sampleSubmission("pro script")
	sub.Links = []string{"https://example.com/hub", " "}
	script, err = svc.Submit(context.Background(), pro.ID, sub)
	require.NoError(t, err)
	assert.Equal(t, model.ScriptStatusApproved, script.Status)
	assert.Equal(t, `["https://example.com/hub"]`, script.Links)
}

func TestSubmitCooldown(t *testing.T) {
	db := newTestDB(t)
	rdb, mr := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "rapid", model.RoleUser, model.RankNone)

	_, err := svc.Submit(context.Background(), author.ID, sampleSubmission("first"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), author.ID, sampleSubmission("second"))
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, redisrepo.CooldownScopeUpload, cooldown.Scope)
	assert.Greater(t, cooldown.RemainingSeconds(), int64(0))

	mr.FastForward(redisrepo.UploadCooldown)
	_, err = svc.Submit(context.Background(), author.ID, sampleSubmission("second"))
	assert.NoError(t, err)
}

func TestListFiltersAndSorts(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "cataloger", model.RoleUser, model.RankNone)

	a := seedApproved(t, db, author, "alpha farm")
	b := seedApproved(t, db, author, "beta esp")
	c := seedApproved(t, db, author, "gamma farm")
	require.NoError(t, db.Model(a).Updates(map[string]any{"views": 10, "like_count": 1, "rating": 4.0}).Error)
	require.NoError(t, db.Model(b).Updates(map[string]any{"views": 5, "like_count": 9, "rating": 2.0, "category": model.CategoryPaid}).Error)
	require.NoError(t, db.Model(c).Updates(map[string]any{"views": 7, "like_count": 3, "rating": 5.0}).Error)

	// 待审脚本不进目录
	pending := makeUser(t, db, "pendinguser", model.RoleUser, model.RankNone)
	_, err := svc.Submit(context.Background(), pending.ID, sampleSubmission("hidden"))
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "", "", "most-viewed", 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha farm", list[0].Name)

	list, err = svc.List(context.Background(), "", "", "most-liked", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "beta esp", list[0].Name)

	list, err = svc.List(context.Background(), "", "", "highest-rated", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "gamma farm", list[0].Name)

	list, err = svc.List(context.Background(), "farm", "", "newest", 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, err = svc.List(context.Background(), "", model.CategoryPaid, "newest", 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "beta esp", list[0].Name)

	// 按作者名搜索
	list, err = svc.List(context.Background(), "cataloger", "", "newest", 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestGetCountsViewsOncePerSession(t *testing.T) {
	db := newTestDB(t)
	rdb, mr := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "viewedauthor", model.RoleUser, model.RankNone)
	script := seedApproved(t, db, author, "view target")
	viewer := makeUser(t, db, "viewer", model.RoleUser, model.RankNone)

	detail, err := svc.Get(context.Background(), script.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)

	detail, err = svc.Get(context.Background(), script.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)

	// 会话窗口过期后重新计数
	mr.FastForward(redisrepo.ViewSeenTTL)
	detail, err = svc.Get(context.Background(), script.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Views)

	// 匿名访问每次都计
	detail, err = svc.Get(context.Background(), script.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.Views)

	_, err = svc.Get(context.Background(), 9999, viewer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveIsIdempotentAndCountsOneDownload(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "savedauthor", model.RoleUser, model.RankNone)
	script := seedApproved(t, db, author, "save target")
	saver := makeUser(t, db, "saver", model.RoleUser, model.RankNone)

	saved, err := svc.Save(context.Background(), saver.ID, script.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.Save(context.Background(), saver.ID, script.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	var reloaded model.Script
	require.NoError(t, db.First(&reloaded, script.ID).Error)
	assert.Equal(t, int64(1), reloaded.Downloads)

	// 保存的是当时的快照
	require.NoError(t, db.Model(&reloaded).Update("name", "renamed later").Error)
	list, err := svc.SavedList(context.Background(), saver.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "save target", list[0].Name)

	_, err = svc.Save(context.Background(), saver.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMineIncludesPending(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewScriptService(db, rdb)
	author := makeUser(t, db, "manager", model.RoleUser, model.RankNone)
	seedApproved(t, db, author, "already live")
	_, err := svc.Submit(context.Background(), author.ID, sampleSubmission("waiting"))
	require.NoError(t, err)

	mine, err := svc.Mine(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
