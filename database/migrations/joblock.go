package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/joblock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateJobLocksTable toplu gönderim kilitleri için tabloyu oluşturur/günceller.
func MigrateJobLocksTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating job_locks table...")
	err := db.AutoMigrate(&joblock.JobLock{})
	if err != nil {
		configslog.Log.Error("Failed to migrate job_locks table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Job_locks table migrated successfully")
	return nil
}
