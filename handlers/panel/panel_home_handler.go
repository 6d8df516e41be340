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

// PanelHomeHandler üye panelinin ana sayfası için handler.
type PanelHomeHandler struct {
	memberService  services.IMemberService
	meetingService services.IMeetingService
	eventService   services.IEventService
	rsvpService    services.IRSVPService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		memberService:  services.NewMemberService(),
		meetingService: services.NewMeetingService(),
		eventService:   services.NewEventService(),
		rsvpService:    services.NewRSVPService(),
	}
}

// HomePage yaklaşan toplantıları, açık etkinlikleri ve üyenin kendi
// katılım kayıtlarını gösterir. Gizli ve özel kayıtlar listelenmez.
func (h *PanelHomeHandler) HomePage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	now := time.Now()

	meetings, err := h.meetingService.GetUpcoming(c.UserContext(), now, false)
	if err != nil {
		configslog.Log.Error("Panel - HomePage: toplantılar alınamadı", zap.Error(err))
	}
	events, err := h.eventService.GetUpcoming(c.UserContext(), now, false)
	if err != nil {
		configslog.Log.Error("Panel - HomePage: etkinlikler alınamadı", zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Kulüp Paneli",
		"Meetings": meetings,
		"Events":   events,
	}

	// Kullanıcı bir üye kaydına bağlıysa kendi katılımları da gösterilir.
	if member, err := h.memberService.GetMemberByUserID(c.UserContext(), userID); err == nil {
		renderData["Member"] = member
		if participations, err := h.rsvpService.ListByMember(c.UserContext(), member.ID); err == nil {
			renderData["Participations"] = participations
		}
	}

	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData, http.StatusOK)
}
