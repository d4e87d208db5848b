package service

import (
	"context"
	"testing"

	"Nexus_Protocols/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRoleGates(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewAdminService(db, rdb)
	target := makeUser(t, db, "promotee", model.RoleUser, model.RankNone)

	_, err := svc.UpdateRole(context.Background(), model.RoleAdmin, target.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	// moderator不能授予admin
	_, err = svc.UpdateRole(context.Background(), model.RoleModerator, target.ID, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrNoPermission)

	user, err := svc.UpdateRole(context.Background(), model.RoleModerator, target.ID, model.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, user.Role)

	user, err = svc.UpdateRole(context.Background(), model.RoleAdmin, target.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	_, err = svc.UpdateRole(context.Background(), model.RoleAdmin, 9999, model.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRank(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewAdminService(db, rdb)
	target := makeUser(t, db, "ranked", model.RoleUser, model.RankNone)

	_, err := svc.UpdateRank(context.Background(), target.ID, "legendary")
	assert.ErrorIs(t, err, ErrInvalidRank)

	user, err := svc.UpdateRank(context.Background(), target.ID, model.RankVerified)
	require.NoError(t, err)
	assert.Equal(t, model.RankVerified, user.Rank)
	assert.True(t, user.IsVerified())

	user, err = svc.UpdateRank(context.Background(), target.ID, model.RankNone)
	require.NoError(t, err)
	assert.False(t, user.IsVerified())
}

func TestAddBalance(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewAdminService(db, rdb)
	target := makeUser(t, db, "funded", model.RoleUser, model.RankNone)

	for _, bad := range []int64{0, -100} {
		_, err := svc.AddBalance(context.Background(), target.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	user, err := svc.AddBalance(context.Background(), target.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), user.Balance)

	user, err = svc.AddBalance(context.Background(), target.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), user.Balance)

	_, err = svc.AddBalance(context.Background(), 9999, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersPagination(t *testing.T) {
	db := newTestDB(t)
	rdb, _ := newTestRedis(t)
	svc := NewAdminService(db, rdb)

	for i := 0; i < 5; i++ {
		makeUser(t, db, string(rune('a'+i))+"_roster", model.RoleUser, model.RankNone)
	}

	users, err := svc.ListUsers(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = svc.ListUsers(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
