package migrations

import (
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateChatMessagesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating chat_messages table...")
	err := db.AutoMigrate(&models.ChatMessage{})
	if err != nil {
		configslog.Log.Error("Failed to migrate chat_messages table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Chat_messages table migrated successfully")
	return nil
}
