package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRSVPApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configslog.InitTestLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Event{},
		&models.Participant{},
		&models.RSVPLog{},
		&models.ActivityLog{},
	))
	configs.SetDB(db)

	app := fiber.New()
	handler := NewRSVPHandler()
	app.Post("/rsvp/:eventKey/:webKey", handler.SubmitRSVP)
	return app, db
}

func TestSubmitRSVPInvalidStatusJSON(t *testing.T) {
	app, db := setupRSVPApp(t)

	member := &models.Member{Name: "Ali", Email: "ali@example.com", WebKey: uuid.NewString(), Active: true}
	require.NoError(t, db.Create(member).Error)
	event := &models.Event{EventKey: "deneme-bulusmasi", Summary: "Deneme"}
	require.NoError(t, db.Create(event).Error)

	req := httptest.NewRequest("POST", "/rsvp/deneme-bulusmasi/"+member.WebKey,
		strings.NewReader("status=bilinmeyen"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Hata gövdesi error bayrağı ve okunur mesaj taşır.
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Error)
	assert.NotEmpty(t, body.Message)

	// Geçersiz yanıt hiçbir katılım kaydı bırakmaz.
	var count int64
	require.NoError(t, db.Model(&models.Participant{}).Count(&count).Error)
	assert.Zero(t, count)
}
