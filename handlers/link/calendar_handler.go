package handlers

import (
	"errors"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CalendarHandler üyeye özel iCalendar akışı için handler.
type CalendarHandler struct {
	service services.ICalendarService
}

// NewCalendarHandler yeni bir CalendarHandler örneği oluşturur.
func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{service: services.NewCalendarService()}
}

// Feed üyenin takvim akışını text/calendar olarak döndürür.
// GET /takvim/:webKey.ics
func (h *CalendarHandler) Feed(c *fiber.Ctx) error {
	webKey := c.Params("webKey")

	feed, err := h.service.FeedForMember(c.UserContext(), webKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		case errors.Is(err, services.ErrCalendarDisabled):
			return c.SendStatus(fiber.StatusForbidden)
		default:
			configslog.Log.Error("Link - Calendar Feed Error", zap.Error(err))
			return c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="takvim.ics"`)
	return c.SendString(feed)
}
