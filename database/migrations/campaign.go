package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCampaignTables kampanya ve alıcı tablolarını oluşturur/günceller.
func MigrateCampaignTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating campaigns table...")
	if err := db.AutoMigrate(&models.Campaign{}); err != nil {
		configslog.Log.Error("Failed to migrate campaigns table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating campaign_recipients table...")
	if err := db.AutoMigrate(&models.CampaignRecipient{}); err != nil {
		configslog.Log.Error("Failed to migrate campaign_recipients table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Campaign tables migrated successfully")
	return nil
}
