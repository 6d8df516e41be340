package services

import (
	"testing"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/joblock"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB bellek içi SQLite ile temiz bir şema kurar ve global DB'yi
// ona yönlendirir. Tek bağlantı kullanılır; :memory: veritabanı bağlantı
// başına ayrıdır.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	configslog.InitTestLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Book{},
		&models.Place{},
		&models.Member{},
		&models.Group{},
		&models.GroupMember{},
		&models.Meeting{},
		&models.Event{},
		&models.Participant{},
		&models.RSVPLog{},
		&models.Campaign{},
		&models.CampaignRecipient{},
		&models.ChatMessage{},
		&models.ActivityLog{},
		&models.ForwardedMail{},
		&joblock.JobLock{},
	))

	configs.SetDB(db)
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name, email string) *models.Member {
	t.Helper()
	member := &models.Member{
		WebKey:     uuid.NewString(),
		Name:       name,
		Email:      email,
		Active:     true,
		HTMLFormat: true,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, isSystem bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		IsSystem:     isSystem,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
