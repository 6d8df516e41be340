package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session yardımcıları. Store, route middleware'i tarafından
// c.Locals("session_store") içine konur.

var ErrNoSession = errors.New("session bulunamadı")

// SessionStart mevcut isteğin session'ını açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSession
	}
	return store.Get(c)
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, ErrNoSession
	}
	return id, nil
}

// GetIsSystemFromSession oturumdaki admin bayrağını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get("is_system").(bool)
	if !ok {
		return false, ErrNoSession
	}
	return isSystem, nil
}

// SetUserSession girişte oturum alanlarını doldurur.
func SetUserSession(sess *session.Session, userID uint, userName string, isSystem bool) error {
	sess.Set("user_id", userID)
	sess.Set("user_name", userName)
	sess.Set("is_system", isSystem)
	return sess.Save()
}

// DestroySession çıkışta oturumu yok eder.
func DestroySession(sess *session.Session) error {
	return sess.Destroy()
}
