package middlewares

import (
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware oturum açmamış istekleri login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	if _, err := utils.GetUserIDFromSession(sess); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Lütfen önce giriş yapın.")
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// GuestMiddleware oturum açmış kullanıcıyı ait olduğu panele yönlendirir;
// login/register sayfaları yalnızca misafirlere gösterilir.
func GuestMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Next()
	}
	if _, err := utils.GetUserIDFromSession(sess); err != nil {
		return c.Next()
	}
	isSystem, _ := utils.GetIsSystemFromSession(sess)
	if isSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}
