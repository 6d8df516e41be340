package joblock

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&JobLock{}))
	return NewManager(db)
}

func TestClaimAndFree(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Claim(ctx, "campaign_1"))

	locked, err := m.IsLocked(ctx, "campaign_1")
	require.NoError(t, err)
	assert.True(t, locked)

	// Aynı kilit ikinci kez alınamaz.
	assert.ErrorIs(t, m.Claim(ctx, "campaign_1"), ErrAlreadyLocked)

	// Farklı isim bağımsızdır.
	require.NoError(t, m.Claim(ctx, "campaign_2"))

	require.NoError(t, m.Free(ctx, "campaign_1"))
	locked, err = m.IsLocked(ctx, "campaign_1")
	require.NoError(t, err)
	assert.False(t, locked)

	// Bırakılan kilit yeniden alınabilir.
	require.NoError(t, m.Claim(ctx, "campaign_1"))
}

func TestFreeMissingLockIsNoop(t *testing.T) {
	m := newTestManager(t)
	assert.NoError(t, m.Free(context.Background(), "olmayan_kilit"))
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "campaign_42", KeyFor("campaign", "42"))
	assert.Equal(t, "event_eylul_bulusmasi2026", KeyFor("event", "eylul bulusmasi.2026!"))
}
