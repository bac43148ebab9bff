package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contaia-backend/shared/tenancy"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, zap.NewNop()))
	return db
}

func TestAuditWriterRecordsRegistryEvents(t *testing.T) {
	db := setupTestDB(t)
	w := NewAuditWriter(db, nil, 0)
	w.Start()

	reg, err := tenancy.NewRegistry()
	require.NoError(t, err)
	reg.Subscribe(w.Record)

	org, err := reg.CreateOrganization(tenancy.OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	uid, err := reg.InviteUser(tenancy.InviteInput{Email: "alice@acme.com", Role: "manager", OrganizationID: org})
	require.NoError(t, err)
	require.NoError(t, reg.SuspendOrganization(org))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Close(ctx))

	entries, err := w.List(context.Background(), AuditFilter{OrganizationID: org})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, string(tenancy.EventOrganizationSuspended), entries[0].EventType)

	invites, err := w.List(context.Background(), AuditFilter{EntityID: uid})
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "alice@acme.com", invites[0].Data["email"])

	created, err := w.List(context.Background(), AuditFilter{EventType: string(tenancy.EventOrganizationCreated)})
	require.NoError(t, err)
	assert.Len(t, created, 1)

	// closed writers ignore further events
	_, err = reg.CreateOrganization(tenancy.OrganizationInput{Name: "Later"})
	require.NoError(t, err)
	all, err := w.List(context.Background(), AuditFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAuditWriterDropsWhenFull(t *testing.T) {
	db := setupTestDB(t)
	w := NewAuditWriter(db, nil, 1)

	w.Record(tenancy.Event{Type: tenancy.EventUserInvited, EntityID: "u1", At: time.Now()})
	w.Record(tenancy.Event{Type: tenancy.EventUserInvited, EntityID: "u2", At: time.Now()})

	w.Start()
	require.NoError(t, w.Close(context.Background()))

	all, err := w.List(context.Background(), AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "u1", all[0].EntityID)
}
