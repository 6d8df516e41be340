package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventHandler etkinlik yönetimi için handler (Dashboard).
type EventHandler struct {
	service       services.IEventService
	rsvpService   services.IRSVPService
	senderService services.ISenderService
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler() *EventHandler {
	return &EventHandler{
		service:       services.NewEventService(),
		rsvpService:   services.NewRSVPService(),
		senderService: services.NewSenderService(),
	}
}

// ListEvents etkinlikleri listeler.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("starts_at")
	}
	params.Validate()

	result, err := h.service.GetEventsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Etkinlikler",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Etkinlikler listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Event{}}
		configslog.Log.Error("Dashboard - ListEvents Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/events/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateEvent etkinlik ekleme formunu gösterir.
func (h *EventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Etkinlik",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/events/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreateEvent formdan gelen etkinliği elle oluşturur.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	event := &models.Event{
		EventKey:  c.FormValue("event_key"),
		Summary:   c.FormValue("summary"),
		Body:      c.FormValue("body"),
		IsPrivate: formBool(c, "is_private"),
	}
	if v := c.FormValue("max_attend"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			event.MaxAttend = n
		}
	}
	if v := c.FormValue("priority"); v != "" {
		event.Priority = formBool(c, "priority")
	}
	if t, err := time.Parse("2006-01-02T15:04", c.FormValue("starts_at")); err == nil {
		event.StartsAt = t
	}
	if t, err := time.Parse("2006-01-02T15:04", c.FormValue("ends_at")); err == nil {
		event.EndsAt = t
	}

	if err := h.service.CreateEvent(c.UserContext(), event); err != nil {
		errMsg := "Etkinlik oluşturulamadı: " + err.Error()
		if errors.Is(err, services.ErrEventKeyTaken) {
			errMsg = "Bu anahtar başka bir etkinlikte kullanılıyor."
		} else if !errors.Is(err, services.ErrEventInvalidInput) {
			configslog.Log.Error("Dashboard - CreateEvent Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, event)
		return c.Redirect("/dashboard/events/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik oluşturuldu.")
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", event.ID), fiber.StatusSeeOther)
}

// ShowUpdateEvent etkinlik düzenleme formunu, katılımcı ve RSVP
// geçmişiyle birlikte gösterir.
func (h *EventHandler) ShowUpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	event, err := h.service.GetEventByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	participants, err := h.rsvpService.ListParticipants(c.UserContext(), id)
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateEvent: katılımcılar alınamadı", zap.Uint("id", id), zap.Error(err))
	}
	history, err := h.rsvpService.ListHistory(c.UserContext(), id)
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateEvent: geçmiş alınamadı", zap.Uint("id", id), zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":        "Etkinliği Düzenle",
		"Event":        event,
		"Participants": participants,
		"History":      history,
		"FormData":     flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/events/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateEvent etkinliğin içerik alanlarını günceller.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	event, err := h.service.GetEventByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	event.Summary = c.FormValue("summary", event.Summary)
	event.Body = c.FormValue("body", event.Body)
	event.IsPrivate = formBool(c, "is_private")
	if v := c.FormValue("max_attend"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			event.MaxAttend = n
		}
	}
	if v := c.FormValue("priority"); v != "" {
		event.Priority = formBool(c, "priority")
	}
	if v := c.FormValue("starts_at"); v != "" {
		if t, err := time.Parse("2006-01-02T15:04", v); err == nil {
			event.StartsAt = t
		}
	}
	if v := c.FormValue("ends_at"); v != "" {
		if t, err := time.Parse("2006-01-02T15:04", v); err == nil {
			event.EndsAt = t
		}
	}

	if err := h.service.UpdateEvent(c.UserContext(), event); err != nil {
		configslog.Log.Error("Dashboard - UpdateEvent Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik güncellendi.")
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
}

// RenameEventKey etkinliğin dışa dönük anahtarını değiştirir.
func (h *EventHandler) RenameEventKey(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	newKey := c.FormValue("event_key")
	if err := h.service.RenameKey(c.UserContext(), id, newKey); err != nil {
		errMsg := "Anahtar değiştirilemedi: " + err.Error()
		if errors.Is(err, services.ErrEventKeyTaken) {
			errMsg = "Bu anahtar başka bir etkinlikte kullanılıyor."
		} else if !errors.Is(err, services.ErrEventNotFound) && !errors.Is(err, services.ErrEventInvalidInput) {
			configslog.Log.Error("Dashboard - RenameEventKey Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik anahtarı güncellendi.")
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
}

// InviteMember üyeyi etkinliğe ekler.
func (h *EventHandler) InviteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.rsvpService.Invite(c.UserContext(), id, uint(memberID)); err != nil {
		configslog.Log.Error("Dashboard - InviteMember Error", zap.Uint("eventID", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye davet edilemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye etkinliğe eklendi.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
}

// RemoveParticipant üyenin katılım kaydını siler.
func (h *EventHandler) RemoveParticipant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.rsvpService.RemoveParticipant(c.UserContext(), id, uint(memberID)); err != nil {
		configslog.Log.Error("Dashboard - RemoveParticipant Error", zap.Uint("eventID", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Katılımcı çıkarılamadı: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Katılımcı çıkarıldı.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
}

// SendInvites davet e-postalarının henüz almamış katılımcılara arka planda
// gönderimini başlatır.
func (h *EventHandler) SendInvites(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	if err := h.senderService.StartEventInvites(c.UserContext(), id); err != nil {
		errMsg := "Davet gönderimi başlatılamadı: " + err.Error()
		switch {
		case errors.Is(err, services.ErrSendAlreadyRunning):
			errMsg = "Bu etkinlik için davet gönderimi zaten sürüyor."
		case errors.Is(err, services.ErrSendNothingToDo):
			errMsg = "Gönderilecek davet kalmadı."
		default:
			configslog.Log.Error("Dashboard - SendInvites Error", zap.Uint("eventID", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Davet gönderimi başlatıldı.")
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", id), fiber.StatusSeeOther)
}

// DeleteEvent etkinliği ve bağlı kayıtlarını siler.
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteEvent(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrEventNotFound) {
			configslog.Log.Error("Dashboard - DeleteEvent Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik silinemedi.")
		return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik silindi.")
	return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
}
