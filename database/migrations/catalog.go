package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCatalogTables yazar, kitap ve mekan tablolarını oluşturur/günceller.
// Kitaplar yazar tablosuna FK ile bağlı olduğundan sıralama önemlidir.
func MigrateCatalogTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating authors table...")
	if err := db.AutoMigrate(&models.Author{}); err != nil {
		configslog.Log.Error("Failed to migrate authors table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating books table...")
	if err := db.AutoMigrate(&models.Book{}); err != nil {
		configslog.Log.Error("Failed to migrate books table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Migrating places table...")
	if err := db.AutoMigrate(&models.Place{}); err != nil {
		configslog.Log.Error("Failed to migrate places table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Catalog tables migrated successfully")
	return nil
}
