package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateEventTables etkinlik, katılımcı ve RSVP günlüğü tablolarını
// oluşturur/günceller.
func MigrateEventTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating events table...")
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		configslog.Log.Error("Failed to migrate events table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating participants table...")
	if err := db.AutoMigrate(&models.Participant{}); err != nil {
		configslog.Log.Error("Failed to migrate participants table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating rsvp_logs table...")
	if err := db.AutoMigrate(&models.RSVPLog{}); err != nil {
		configslog.Log.Error("Failed to migrate rsvp_logs table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Event tables migrated successfully")
	return nil
}
