package routes

import (
	handlers "kitapkulubu.link/handlers/panel"
	"kitapkulubu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki üye rotalarını tanımlar.
// Oturum açmış her aktif kullanıcı erişebilir.
func registerPanelRoutes(app *fiber.App) {
	homeHandler := handlers.NewPanelHomeHandler()
	chatHandler := handlers.NewChatHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
	)

	panelGroup.Get("/home", homeHandler.HomePage)

	// Sohbet
	panelGroup.Get("/chat/:targetType/:targetId", chatHandler.ShowChat)
	panelGroup.Post("/chat/:targetType/:targetId", chatHandler.PostMessage)
	panelGroup.Post("/chat/:targetType/:targetId/delete", chatHandler.DeleteMessage)
}
