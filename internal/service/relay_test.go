package service

import (
	"context"
	"errors"
	"testing"

	"Nexus_Protocols/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayerDrainMarksSent(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	scripts := NewScriptService(db, rdb)
	author := makeUser(t, db, "relayauthor", model.RoleUser, model.RankNone)

	_, err := scripts.Submit(context.Background(), author.ID, sampleSubmission("relayed"))
	require.NoError(t, err)

	var sent []model.ModerationOutbox
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.ModerationOutbox) error {
		sent = append(sent, *ob)
		return nil
	})
	relayer.drainOnce(context.Background())

	require.Len(t, sent, 1)
	assert.Equal(t, "submit", sent[0].EventType)

	// 已发送的不再重投
	relayer.drainOnce(context.Background())
	assert.Len(t, sent, 1)

	var row model.ModerationOutbox
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, int8(1), row.Status)
}

func TestRelayerParksFailedEvents(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	scripts := NewScriptService(db, rdb)
	author := makeUser(t, db, "failauthor", model.RoleUser, model.RankNone)

	_, err := scripts.Submit(context.Background(), author.ID, sampleSubmission("unlucky"))
	require.NoError(t, err)

	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.ModerationOutbox) error {
		return errors.New("broker down")
	})
	relayer.drainOnce(context.Background())

	var row model.ModerationOutbox
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, int8(2), row.Status)
	assert.Equal(t, 1, row.Retry)
}
