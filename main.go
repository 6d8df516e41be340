package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configsdatabase"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	cfg := configs.GetConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")
	if cfg.Env == "development" {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: sinyal gelince önce HTTP dinleyicisi kapanır,
	// ardından defer'lar DB bağlantısını kapatır.
	shutdownDone := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		configslog.SLog.Infof("Kapatma sinyali alındı (%s), sunucu durduruluyor...", sig)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
		close(shutdownDone)
	}()

	configslog.SLog.Infof("%s %s adresinde dinliyor...", cfg.AppName, cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	<-shutdownDone
	configslog.SLog.Info("Sunucu durduruldu.")
}
