package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateMembersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating members table...")
	err := db.AutoMigrate(&models.Member{})
	if err != nil {
		configslog.Log.Error("Failed to migrate members table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Members table migrated successfully")
	return nil
}
