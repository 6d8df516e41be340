package routes

import (
	"kitapkulubu.link/configs"
	"kitapkulubu.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	registerAuthRoutes(app)
	registerDashboardRoutes(app)
	registerPanelRoutes(app)

	// Web anahtarlı public rotalar en sonda; özel gruplarla çakışmaz.
	registerLinkRoutes(app)

	app.Get("/", rootRedirector)
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u ve oturum bilgilerini her
// istekte locals'a taşır.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		if userID, err := utils.GetUserIDFromSession(sess); err == nil {
			c.Locals("userID", userID)
		}
		if isSystem, err := utils.GetIsSystemFromSession(sess); err == nil {
			c.Locals("isSystem", isSystem)
		}
		if userName, ok := sess.Get("user_name").(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

// rootRedirector oturum durumuna göre giriş, panel ya da dashboard'a
// yönlendirir.
func rootRedirector(c *fiber.Ctx) error {
	userIDRaw := c.Locals("userID")
	isSystemRaw := c.Locals("isSystem")
	if userIDRaw == nil || isSystemRaw == nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	isSystem, ok := isSystemRaw.(bool)
	if !ok {
		return c.Redirect("/auth/login")
	}
	if isSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
