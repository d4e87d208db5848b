package service

import (
	"context"
	"testing"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveMovesPendingIntoCatalog(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	scripts := NewScriptService(db, rdb)
	mod := NewModerationService(db, rdb, pkg.SMTPConfig{})

	author := makeUser(t, db, "hopeful", model.RoleUser, model.RankNone)
	approver := makeUser(t, db, "gatekeeper", model.RoleModerator, model.RankNone)

	submitted, err := scripts.Submit(context.Background(), author.ID, sampleSubmission("awaiting review"))
	require.NoError(t, err)
	require.Equal(t, model.ScriptStatusPending, submitted.Status)

	// 审核前残留的计数在过审时必须清零
	require.NoError(t, db.Model(submitted).Updates(map[string]any{
		"views": 99, "downloads": 9, "like_count": 5, "dislike_count": 2,
		"rating": 4.5, "rating_count": 3,
	}).Error)

	approved, err := mod.Approve(context.Background(), submitted.ID, approver.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScriptStatusApproved, approved.Status)
	assert.Equal(t, approver.ID, approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Zero(t, approved.Views)
	assert.Zero(t, approved.Downloads)
	assert.Zero(t, approved.LikeCount)
	assert.Zero(t, approved.DislikeCount)
	assert.Zero(t, approved.Rating)
	assert.Zero(t, approved.RatingCount)

	// 不再处于待审，重复过审报404
	_, err = mod.Approve(context.Background(), submitted.ID, approver.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	pending, err := mod.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	// submit+approve两条出箱事件
	var events []model.ModerationOutbox
	require.NoError(t, db.Where("script_id = ?", submitted.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "submit", events[0].EventType)
	assert.Equal(t, "approve", events[1].EventType)
	assert.Equal(t, approver.ID, events[1].ActorID)
}

func TestRejectDeletesPendingAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	scripts := NewScriptService(db, rdb)
	mod := NewModerationService(db, rdb, pkg.SMTPConfig{})

	author := makeUser(t, db, "rejected", model.RoleUser, model.RankNone)
	actor := makeUser(t, db, "strictmod", model.RoleModerator, model.RankNone)

	submitted, err := scripts.Submit(context.Background(), author.ID, sampleSubmission("not good enough"))
	require.NoError(t, err)

	require.NoError(t, mod.Reject(context.Background(), submitted.ID, actor.ID))
	require.NoError(t, mod.Reject(context.Background(), submitted.ID, actor.ID))

	var count int64
	require.NoError(t, db.Model(&model.Script{}).Where("id = ?", submitted.ID).Count(&count).Error)
	assert.Zero(t, count)

	// 已过审脚本不受reject影响
	live := seedApproved(t, db, author, "already live")
	require.NoError(t, mod.Reject(context.Background(), live.ID, actor.ID))
	var reloaded model.Script
	require.NoError(t, db.First(&reloaded, live.ID).Error)
	assert.Equal(t, model.ScriptStatusApproved, reloaded.Status)
}

func TestListPendingNewestFirst(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	mod := NewModerationService(db, rdb, pkg.SMTPConfig{})
	author := makeUser(t, db, "queueauthor", model.RoleUser, model.RankNone)

	for _, name := range []string{"first", "second", "third"} {
		script := &model.Script{
			Name: name, Description: "d", Code: "c", Category: model.CategoryFree,
			Thumbnail: "t", Links: "[]",
			AuthorID: author.ID, AuthorName: author.Username,
			Status: model.ScriptStatusPending,
		}
		require.NoError(t, db.Create(script).Error)
	}

	pending, err := mod.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "third", pending[0].Name)
}
