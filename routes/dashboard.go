package routes

import (
	handlers "kitapkulubu.link/handlers/dashboard"
	"kitapkulubu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece IsSystem=true olan kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := handlers.NewHomeHandler()
	authorHandler := handlers.NewAuthorHandler()
	bookHandler := handlers.NewBookHandler()
	placeHandler := handlers.NewPlaceHandler()
	groupHandler := handlers.NewGroupHandler()
	meetingHandler := handlers.NewMeetingHandler()
	memberHandler := handlers.NewMemberHandler()
	eventHandler := handlers.NewEventHandler()
	campaignHandler := handlers.NewCampaignHandler()
	logHandler := handlers.NewActivityLogHandler()
	mailHandler := handlers.NewMailHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireSystem(),
	)

	dashboardGroup.Get("/home", homeHandler.HomePage)

	// Yazarlar
	dashboardGroup.Get("/authors", authorHandler.ListAuthors)
	dashboardGroup.Get("/authors/create", authorHandler.ShowCreateAuthor)
	dashboardGroup.Post("/authors/create", authorHandler.CreateAuthor)
	dashboardGroup.Get("/authors/update/:id", authorHandler.ShowUpdateAuthor)
	dashboardGroup.Post("/authors/update/:id", authorHandler.UpdateAuthor)
	dashboardGroup.Post("/authors/delete/:id", authorHandler.DeleteAuthor)
	dashboardGroup.Delete("/authors/delete/:id", authorHandler.DeleteAuthor)

	// Kitaplar
	dashboardGroup.Get("/books", bookHandler.ListBooks)
	dashboardGroup.Get("/books/create", bookHandler.ShowCreateBook)
	dashboardGroup.Post("/books/create", bookHandler.CreateBook)
	dashboardGroup.Get("/books/update/:id", bookHandler.ShowUpdateBook)
	dashboardGroup.Post("/books/update/:id", bookHandler.UpdateBook)
	dashboardGroup.Post("/books/delete/:id", bookHandler.DeleteBook)
	dashboardGroup.Delete("/books/delete/:id", bookHandler.DeleteBook)

	// Mekanlar
	dashboardGroup.Get("/places", placeHandler.ListPlaces)
	dashboardGroup.Get("/places/create", placeHandler.ShowCreatePlace)
	dashboardGroup.Post("/places/create", placeHandler.CreatePlace)
	dashboardGroup.Get("/places/update/:id", placeHandler.ShowUpdatePlace)
	dashboardGroup.Post("/places/update/:id", placeHandler.UpdatePlace)
	dashboardGroup.Post("/places/delete/:id", placeHandler.DeletePlace)
	dashboardGroup.Delete("/places/delete/:id", placeHandler.DeletePlace)

	// Gruplar ve üyelikler
	dashboardGroup.Get("/groups", groupHandler.ListGroups)
	dashboardGroup.Get("/groups/create", groupHandler.ShowCreateGroup)
	dashboardGroup.Post("/groups/create", groupHandler.CreateGroup)
	dashboardGroup.Get("/groups/update/:id", groupHandler.ShowUpdateGroup)
	dashboardGroup.Post("/groups/update/:id", groupHandler.UpdateGroup)
	dashboardGroup.Post("/groups/delete/:id", groupHandler.DeleteGroup)
	dashboardGroup.Delete("/groups/delete/:id", groupHandler.DeleteGroup)
	dashboardGroup.Get("/groups/members/:id", groupHandler.ShowMembership)
	dashboardGroup.Post("/groups/members/:id/add", groupHandler.AddMember)
	dashboardGroup.Post("/groups/members/:id/remove", groupHandler.RemoveMember)

	// Toplantılar
	dashboardGroup.Get("/meetings", meetingHandler.ListMeetings)
	dashboardGroup.Get("/meetings/create", meetingHandler.ShowCreateMeeting)
	dashboardGroup.Post("/meetings/create", meetingHandler.CreateMeeting)
	dashboardGroup.Get("/meetings/update/:id", meetingHandler.ShowUpdateMeeting)
	dashboardGroup.Post("/meetings/update/:id", meetingHandler.UpdateMeeting)
	dashboardGroup.Post("/meetings/reschedule/:id", meetingHandler.RescheduleMeeting)
	dashboardGroup.Post("/meetings/generate-event/:id", meetingHandler.GenerateEvent)
	dashboardGroup.Post("/meetings/delete/:id", meetingHandler.DeleteMeeting)
	dashboardGroup.Delete("/meetings/delete/:id", meetingHandler.DeleteMeeting)

	// Üyeler
	dashboardGroup.Get("/members", memberHandler.ListMembers)
	dashboardGroup.Get("/members/create", memberHandler.ShowCreateMember)
	dashboardGroup.Post("/members/create", memberHandler.CreateMember)
	dashboardGroup.Get("/members/update/:id", memberHandler.ShowUpdateMember)
	dashboardGroup.Post("/members/update/:id", memberHandler.UpdateMember)
	dashboardGroup.Post("/members/delete/:id", memberHandler.DeleteMember)
	dashboardGroup.Delete("/members/delete/:id", memberHandler.DeleteMember)

	// Etkinlikler ve katılım
	dashboardGroup.Get("/events", eventHandler.ListEvents)
	dashboardGroup.Get("/events/create", eventHandler.ShowCreateEvent)
	dashboardGroup.Post("/events/create", eventHandler.CreateEvent)
	dashboardGroup.Get("/events/update/:id", eventHandler.ShowUpdateEvent)
	dashboardGroup.Post("/events/update/:id", eventHandler.UpdateEvent)
	dashboardGroup.Post("/events/rename/:id", eventHandler.RenameEventKey)
	dashboardGroup.Post("/events/invite/:id", eventHandler.InviteMember)
	dashboardGroup.Post("/events/remove-participant/:id", eventHandler.RemoveParticipant)
	dashboardGroup.Post("/events/send-invites/:id", eventHandler.SendInvites)
	dashboardGroup.Post("/events/delete/:id", eventHandler.DeleteEvent)
	dashboardGroup.Delete("/events/delete/:id", eventHandler.DeleteEvent)

	// Kampanyalar ve toplu gönderim
	dashboardGroup.Get("/campaigns", campaignHandler.ListCampaigns)
	dashboardGroup.Get("/campaigns/create", campaignHandler.ShowCreateCampaign)
	dashboardGroup.Post("/campaigns/create", campaignHandler.CreateCampaign)
	dashboardGroup.Get("/campaigns/update/:id", campaignHandler.ShowUpdateCampaign)
	dashboardGroup.Post("/campaigns/update/:id", campaignHandler.UpdateCampaign)
	dashboardGroup.Post("/campaigns/delete/:id", campaignHandler.DeleteCampaign)
	dashboardGroup.Delete("/campaigns/delete/:id", campaignHandler.DeleteCampaign)
	dashboardGroup.Post("/campaigns/recipients/:id/add", campaignHandler.AddRecipient)
	dashboardGroup.Post("/campaigns/recipients/:id/remove", campaignHandler.RemoveRecipient)
	dashboardGroup.Post("/campaigns/recipients/:id/target", campaignHandler.TargetRecipients)
	dashboardGroup.Post("/campaigns/send/:id", campaignHandler.StartSend)
	dashboardGroup.Post("/campaigns/cancel/:id", campaignHandler.CancelSend)
	dashboardGroup.Post("/campaigns/clear-sent/:id", campaignHandler.ClearSent)

	// Denetim kayıtları
	dashboardGroup.Get("/logs", logHandler.ListLogs)

	// Yönlendirilen postalar
	dashboardGroup.Get("/mails", mailHandler.ListUnprocessed)
	dashboardGroup.Post("/mails/process", mailHandler.ProcessMail)
	dashboardGroup.Post("/mails/reject", mailHandler.RejectMail)
}
