package handlers

import (
	"errors"
	"net/http"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RSVPHandler web anahtarıyla, oturumsuz RSVP işlemleri için handler.
type RSVPHandler struct {
	rsvpService services.IRSVPService
	logService  services.IActivityLogService
}

// NewRSVPHandler yeni bir RSVPHandler örneği oluşturur.
func NewRSVPHandler() *RSVPHandler {
	return &RSVPHandler{
		rsvpService: services.NewRSVPService(),
		logService:  services.NewActivityLogService(),
	}
}

// ShowRSVP etkinliği ve üyenin güncel yanıtını gösterir.
// GET /rsvp/:eventKey/:webKey
func (h *RSVPHandler) ShowRSVP(c *fiber.Ctx) error {
	eventKey := c.Params("eventKey")
	webKey := c.Params("webKey")

	view, err := h.rsvpService.GetView(c.UserContext(), eventKey, webKey)
	if err != nil {
		if !errors.Is(err, services.ErrEventNotFound) && !errors.Is(err, services.ErrMemberNotFound) {
			configslog.Log.Error("Link - ShowRSVP Error", zap.String("eventKey", eventKey), zap.Error(err))
		}
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Etkinlik Bulunamadı"}, "layouts/error_layout")
	}

	return renderer.Render(c, "link/rsvp", "layouts/link_layout", fiber.Map{
		"Title":       view.Event.Summary,
		"Event":       view.Event,
		"Participant": view.Participant,
		"Attending":   view.Attending,
		"Full":        view.Full,
	}, http.StatusOK)
}

// SubmitRSVP üyenin yanıtını işler.
// POST /rsvp/:eventKey/:webKey
func (h *RSVPHandler) SubmitRSVP(c *fiber.Ctx) error {
	eventKey := c.Params("eventKey")
	webKey := c.Params("webKey")
	status := c.FormValue("status")
	comment := c.FormValue("comment")

	view, err := h.rsvpService.Respond(c.UserContext(), eventKey, webKey, status, comment)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) || errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).Render("errors/404",
				fiber.Map{"Title": "Etkinlik Bulunamadı"}, "layouts/error_layout")
		}
		if errors.Is(err, services.ErrRSVPInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Geçersiz yanıt."})
		}
		configslog.Log.Error("Link - SubmitRSVP Error",
			zap.String("eventKey", eventKey), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Yanıt kaydedilemedi."})
	}

	if logErr := h.logService.Record(c.UserContext(), services.LogTypeRSVP,
		eventKey, webKey, status, ""); logErr != nil {
		configslog.Log.Warn("Link - SubmitRSVP: denetim kaydı yazılamadı", zap.Error(logErr))
	}

	return renderer.Render(c, "link/rsvp_done", "layouts/link_layout", fiber.Map{
		"Title":       view.Event.Summary,
		"Event":       view.Event,
		"Participant": view.Participant,
		"Attending":   view.Attending,
		"Full":        view.Full,
		"Waiting":     view.Participant != nil && view.Participant.Waiting,
	}, http.StatusOK)
}
