package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"kitapkulubu.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB Postgres bağlantısını kurar ve global GORM örneğini hazırlar.
// DSN parçaları environment'tan okunur (DB_HOST, DB_PORT, DB_USER, DB_PASS, DB_NAME).
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASS", ""),
		getEnv("DB_NAME", "kitapkulubu"),
		getEnv("DB_SSLMODE", "disable"),
	)

	gormLogLevel := logger.Warn
	if os.Getenv("APP_ENV") != "production" {
		gormLogLevel = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db = conn
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu.")
}

// GetDB global GORM örneğini döndürür.
func GetDB() *gorm.DB {
	return db
}

// SetDB test ortamında (örn. in-memory sqlite) DB örneğini değiştirir.
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB altta yatan bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Bağlantı kapatılırken sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
