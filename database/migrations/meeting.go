package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateMeetingsTable toplantı tablosunu oluşturur/günceller.
// Grup, kitap ve mekan tabloları FK için önceden var olmalıdır.
func MigrateMeetingsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating meetings table...")
	err := db.AutoMigrate(&models.Meeting{})
	if err != nil {
		configslog.Log.Error("Failed to migrate meetings table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Meetings table migrated successfully")
	return nil
}
