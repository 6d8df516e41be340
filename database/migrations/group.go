package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateGroupTables grup ve grup üyeliği tablolarını oluşturur/günceller.
func MigrateGroupTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating groups table...")
	if err := db.AutoMigrate(&models.Group{}); err != nil {
		configslog.Log.Error("Failed to migrate groups table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating group_members table...")
	if err := db.AutoMigrate(&models.GroupMember{}); err != nil {
		configslog.Log.Error("Failed to migrate group_members table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Group tables migrated successfully")
	return nil
}
