package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateForwardedMailsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forwarded_mails table...")
	err := db.AutoMigrate(&models.ForwardedMail{})
	if err != nil {
		configslog.Log.Error("Failed to migrate forwarded_mails table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Forwarded_mails table migrated successfully")
	return nil
}
