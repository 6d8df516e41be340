package database

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/database/migrations"
	"kitapkulubu.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	configslog.SLog.Info("İşlem commit ediliyor...")
	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları FK bağımlılıklarına uygun sırayla migrate eder.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	configslog.SLog.Info(" -> User migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateUsersTable(db); err != nil {
		configslog.Log.Error("Users tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> User migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Katalog migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateCatalogTables(db); err != nil {
		configslog.Log.Error("Katalog tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Katalog migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Member migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateMembersTable(db); err != nil {
		configslog.Log.Error("Members tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Member migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Group migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateGroupTables(db); err != nil {
		configslog.Log.Error("Group tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Group migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Meeting migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateMeetingsTable(db); err != nil {
		configslog.Log.Error("Meetings tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Meeting migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Event migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateEventTables(db); err != nil {
		configslog.Log.Error("Event tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Event migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Campaign migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateCampaignTables(db); err != nil {
		configslog.Log.Error("Campaign tabloları migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Campaign migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Chat migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateChatMessagesTable(db); err != nil {
		configslog.Log.Error("Chat_messages tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Chat migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> ActivityLog migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateActivityLogsTable(db); err != nil {
		configslog.Log.Error("Activity_logs tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> ActivityLog migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> ForwardedMail migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateForwardedMailsTable(db); err != nil {
		configslog.Log.Error("Forwarded_mails tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> ForwardedMail migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> JobLock migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateJobLocksTable(db); err != nil {
		configslog.Log.Error("Job_locks tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> JobLock migrasyonları tamamlandı.")

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info("Sistem kullanıcısı kontrol ediliyor/oluşturuluyor/güncelleniyor...")
	if err := seeders.SeedSystemUser(db); err != nil {
		configslog.Log.Error("Sistem kullanıcısı seed/update işlemi başarısız", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
