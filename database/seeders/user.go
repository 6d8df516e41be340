package seeders

import (
	"errors"
	"os"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser yönetici hesabını ortam değişkenlerinden oluşturur veya
// şifresini günceller. SYSTEM_USER_EMAIL ve SYSTEM_USER_PASSWORD zorunludur.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	name := os.Getenv("SYSTEM_USER_NAME")
	if name == "" {
		name = "Sistem Yöneticisi"
	}

	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL veya SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmeyecek.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		existing.Name = name
		existing.PasswordHash = string(hash)
		existing.IsSystem = true
		existing.IsActive = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı '%s' güncellendi (ID: %d).", email, existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsSystem:     true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı '%s' oluşturuldu (ID: %d).", email, user.ID)
	return nil
}
