package handlers

import (
	"net/http"
	"time"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeHandler yönetim ana sayfası için handler.
type HomeHandler struct {
	meetingService services.IMeetingService
	eventService   services.IEventService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		meetingService: services.NewMeetingService(),
		eventService:   services.NewEventService(),
	}
}

// HomePage yaklaşan toplantı ve etkinliklerin özetini gösterir.
// Gizli ve özel kayıtlar da yöneticiye görünür.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	now := time.Now()
	meetings, err := h.meetingService.GetUpcoming(c.UserContext(), now, true)
	if err != nil {
		configslog.Log.Error("Dashboard - HomePage: toplantılar alınamadı", zap.Error(err))
	}
	events, err := h.eventService.GetUpcoming(c.UserContext(), now, true)
	if err != nil {
		configslog.Log.Error("Dashboard - HomePage: etkinlikler alınamadı", zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yönetim Paneli",
		"Meetings": meetings,
		"Events":   events,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData, http.StatusOK)
}
