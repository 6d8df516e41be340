package routes

import (
	handlers "kitapkulubu.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerLinkRoutes web anahtarı ile erişilen public rotaları tanımlar.
// Oturum gerektirmez; yetki webKey üzerinden doğrulanır.
func registerLinkRoutes(app *fiber.App) {
	rsvpHandler := handlers.NewRSVPHandler()
	signupHandler := handlers.NewSignupHandler()
	calendarHandler := handlers.NewCalendarHandler()

	app.Get("/rsvp/:eventKey/:webKey", rsvpHandler.ShowRSVP)
	app.Post("/rsvp/:eventKey/:webKey", rsvpHandler.SubmitRSVP)

	app.Get("/signup", signupHandler.ShowSignup)
	app.Post("/signup", signupHandler.Signup)

	app.Get("/takvim/:webKey.ics", calendarHandler.Feed)
}
