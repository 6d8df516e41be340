package middlewares

import (
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/services"
	"kitapkulubu.link/utils"

	"github.com/gofiber/fiber/v2"
)

// StatusMiddleware pasifleştirilmiş hesapların oturumunu sonlandırır.
func StatusMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	userID, err := utils.GetUserIDFromSession(sess)
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}

	userService := services.NewUserService()
	user, err := userService.GetUserByID(c.UserContext(), userID)
	if err != nil || !user.IsActive {
		_ = utils.DestroySession(sess)
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesabınız aktif değil.")
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// RequireSystem yalnızca sistem yöneticilerinin geçmesine izin veren
// middleware döndürür.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
		}
		isSystem, err := utils.GetIsSystemFromSession(sess)
		if err != nil || !isSystem {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu sayfaya erişim yetkiniz yok.")
			return c.Redirect("/panel/home", fiber.StatusFound)
		}
		return c.Next()
	}
}
