package configs

import (
	"os"
	"strconv"
	"time"

	"kitapkulubu.link/configs/configsdatabase"
	"kitapkulubu.link/configs/configslog"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// AppConfig .env'den okunan uygulama ayarları.
type AppConfig struct {
	Env        string // development | production
	ListenAddr string // örn. ":3000"
	AppName    string
	BaseURL    string // Public linklerde kullanılan kök URL

	// Toplu e-posta gönderimi
	SendSleep time.Duration // İki gönderim arası bekleme
}

var appConfig *AppConfig

// LoadEnv .env dosyasını yükler (yoksa sessizce geçer) ve AppConfig'i doldurur.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// .env opsiyonel; production'da gerçek environment kullanılır.
		configslog.SLog.Debug(".env dosyası bulunamadı, environment değişkenleri kullanılacak.")
	}

	appConfig = &AppConfig{
		Env:        getEnv("APP_ENV", "development"),
		ListenAddr: getEnv("LISTEN_ADDR", ":3000"),
		AppName:    getEnv("APP_NAME", "kitapkulubu.link"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),
		SendSleep:  time.Duration(getEnvInt("MAIL_SEND_SLEEP_MS", 250)) * time.Millisecond,
	}
}

// GetConfig yüklü AppConfig'i döndürür. LoadEnv çağrılmadıysa varsayılanlarla doldurur.
func GetConfig() *AppConfig {
	if appConfig == nil {
		LoadEnv()
	}
	return appConfig
}

// GetDB repository katmanının kullandığı global GORM örneğini döndürür.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// SetDB test ortamında DB örneğini değiştirmek için kullanılır.
func SetDB(db *gorm.DB) {
	configsdatabase.SetDB(db)
}

// SetupSession cookie tabanlı session store'u hazırlar.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:kitapkulubu_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   getEnv("APP_ENV", "development") == "production",
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
