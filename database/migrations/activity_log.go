package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateActivityLogsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating activity_logs table...")
	err := db.AutoMigrate(&models.ActivityLog{})
	if err != nil {
		configslog.Log.Error("Failed to migrate activity_logs table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Activity_logs table migrated successfully")
	return nil
}
