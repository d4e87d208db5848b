package service

import (
	"context"
	"testing"

	"Nexus_Protocols/internal/model"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportQueueLifecycle(t *testing.T) {
	db := newTestDB(t)
	rdb, mr := newTestRedis(t)
	svc := NewReportService(db, rdb)
	author := makeUser(t, db, "suspicious", model.RoleUser, model.RankNone)
	script := seedApproved(t, db, author, "reported target")
	reporter := makeUser(t, db, "watchdog", model.RoleUser, model.RankNone)

	_, err := svc.File(context.Background(), reporter.ID, script.ID, "")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.File(context.Background(), reporter.ID, 9999, "stolen")
	assert.ErrorIs(t, err, ErrNotFound)

	report, err := svc.File(context.Background(), reporter.ID, script.ID, "stolen code")
	require.NoError(t, err)
	assert.Equal(t, "watchdog", report.ReporterName)
	assert.Equal(t, "reported target", report.ScriptName)

	_, err = svc.File(context.Background(), reporter.ID, script.ID, "again")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, redisrepo.CooldownScopeReport, cooldown.Scope)

	mr.FastForward(redisrepo.ReportCooldown)
	_, err = svc.File(context.Background(), reporter.ID, script.ID, "again")
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "again", list[0].Reason)

	require.NoError(t, svc.Dismiss(context.Background(), list[0].ID))
	require.NoError(t, svc.Dismiss(context.Background(), list[0].ID))
	list, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
