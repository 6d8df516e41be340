package renderer

import (
	"kitapkulubu.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View'lara geçilen flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages render map'ine flash mesajlarını ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render verilen template'i layout içinde, ortak locals (kullanıcı adı vb.)
// eklenmiş olarak render eder.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if name := c.Locals("userName"); name != nil {
		data["UserName"] = name
	}
	if isSystem := c.Locals("isSystem"); isSystem != nil {
		data["IsSystem"] = isSystem
	}

	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).Render(view, data, layout)
}
