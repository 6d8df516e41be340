package flashmessages

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session tabanlı tek kullanımlık flash mesajları.
// Redirect sonrası formlarda başarı/hata göstermek için kullanılır.

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	flashFormDataKey = "flash_form_data"
)

// FlashData bir istekte gösterilecek flash mesajları.
type FlashData struct {
	Success string
	Error   string
}

func getSession(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, fiber.ErrInternalServerError
	}
	return store.Get(c)
}

// SetFlashMessage verilen anahtara (FlashSuccessKey/FlashErrorKey) mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages mesajları okur ve session'dan temizler.
func GetFlashMessages(c *fiber.Ctx) (FlashData, error) {
	sess, err := getSession(c)
	if err != nil {
		return FlashData{}, err
	}
	data := FlashData{}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = v
		sess.Delete(FlashErrorKey)
	}
	return data, sess.Save()
}

// SetFlashFormData hatalı form verisini redirect sonrası doldurmak için saklar.
func SetFlashFormData(c *fiber.Ctx, formData any) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(formData)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini map olarak döndürür ve temizler.
func GetFlashFormData(c *fiber.Ctx) map[string]any {
	sess, err := getSession(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormDataKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(flashFormDataKey)
	_ = sess.Save()

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
