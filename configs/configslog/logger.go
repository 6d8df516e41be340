package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) global logger.
// SLog ise printf tarzı kullanım için sugared logger.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger global loggerları başlatır. APP_ENV=production ise JSON,
// aksi halde renkli console encoder kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları flush eder. main'de defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// InitTestLogger testlerde gürültüyü önlemek için no-op logger kurar.
func InitTestLogger() {
	Log = zap.NewNop()
	SLog = Log.Sugar()
}
