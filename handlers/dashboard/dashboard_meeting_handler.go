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

const dayLayout = "2006-01-02"

// MeetingHandler toplantı yönetimi için handler (Dashboard).
type MeetingHandler struct {
	service      services.IMeetingService
	eventService services.IEventService
	groupService services.IGroupService
	bookService  services.IBookService
	placeService services.IPlaceService
}

// NewMeetingHandler yeni bir MeetingHandler örneği oluşturur.
func NewMeetingHandler() *MeetingHandler {
	return &MeetingHandler{
		service:      services.NewMeetingService(),
		eventService: services.NewEventService(),
		groupService: services.NewGroupService(),
		bookService:  services.NewBookService(),
		placeService: services.NewPlaceService(),
	}
}

// ListMeetings toplantıları listeler.
func (h *MeetingHandler) ListMeetings(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("day")
	}
	params.Validate()

	result, err := h.service.GetMeetingsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Toplantılar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Toplantılar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Meeting{}}
		configslog.Log.Error("Dashboard - ListMeetings Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/meetings/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateMeeting toplantı ekleme formunu gösterir.
func (h *MeetingHandler) ShowCreateMeeting(c *fiber.Ctx) error {
	groups, _ := h.groupService.GetGroupsPaginated(c.UserContext(), queryparams.DefaultListParams("group_no"))
	books, _ := h.bookService.GetBooksPaginated(c.UserContext(), queryparams.DefaultListParams("title"))
	places, _ := h.placeService.GetPlacesPaginated(c.UserContext(), queryparams.DefaultListParams("name"))

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Toplantı",
		"Groups":   groups,
		"Books":    books,
		"Places":   places,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/meetings/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreateMeeting formdan gelen toplantıyı kaydeder. Aynı gün+grup+kitap
// için ikinci toplantı açılamaz.
func (h *MeetingHandler) CreateMeeting(c *fiber.Ctx) error {
	day, err := time.Parse(dayLayout, c.FormValue("day"))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz tarih.")
		return c.Redirect("/dashboard/meetings/create", fiber.StatusSeeOther)
	}
	groupID, _ := strconv.ParseUint(c.FormValue("group_id"), 10, 64)
	bookID, _ := strconv.ParseUint(c.FormValue("book_id"), 10, 64)

	meeting := &models.Meeting{
		Day:       day,
		GroupID:   uint(groupID),
		BookID:    uint(bookID),
		Hidden:    formBool(c, "hidden"),
		IsPrivate: formBool(c, "is_private"),
	}
	if v := c.FormValue("place_id"); v != "" {
		if placeID, err := strconv.ParseUint(v, 10, 64); err == nil && placeID > 0 {
			pid := uint(placeID)
			meeting.PlaceID = &pid
		}
	}
	if v := c.FormValue("priority"); v != "" {
		meeting.Priority = formBool(c, "priority")
	}

	if err := h.service.ScheduleMeeting(c.UserContext(), meeting); err != nil {
		errMsg := "Toplantı oluşturulamadı: " + err.Error()
		if errors.Is(err, services.ErrMeetingExists) {
			errMsg = "Bu gün, grup ve kitap için toplantı zaten var."
		} else if !errors.Is(err, services.ErrMeetingInvalidInput) {
			configslog.Log.Error("Dashboard - CreateMeeting Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/meetings/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Toplantı oluşturuldu.")
	return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
}

// ShowUpdateMeeting toplantı düzenleme formunu gösterir.
func (h *MeetingHandler) ShowUpdateMeeting(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	meeting, err := h.service.GetMeetingByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Toplantı bulunamadı.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	places, _ := h.placeService.GetPlacesPaginated(c.UserContext(), queryparams.DefaultListParams("name"))

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":   "Toplantıyı Düzenle",
		"Meeting": meeting,
		"Places":  places,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/meetings/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateMeeting toplantının anahtar dışı alanlarını günceller.
// Tarih değişikliği ayrı uçtan (Reschedule) yapılır.
func (h *MeetingHandler) UpdateMeeting(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	meeting, err := h.service.GetMeetingByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Toplantı bulunamadı.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	if v := c.FormValue("place_id"); v != "" {
		if placeID, err := strconv.ParseUint(v, 10, 64); err == nil && placeID > 0 {
			pid := uint(placeID)
			meeting.PlaceID = &pid
		} else {
			meeting.PlaceID = nil
		}
	}
	meeting.Hidden = formBool(c, "hidden")
	meeting.IsPrivate = formBool(c, "is_private")
	if v := c.FormValue("priority"); v != "" {
		meeting.Priority = formBool(c, "priority")
	}

	if err := h.service.UpdateMeeting(c.UserContext(), meeting); err != nil {
		configslog.Log.Error("Dashboard - UpdateMeeting Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/meetings/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Toplantı güncellendi.")
	return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
}

// RescheduleMeeting toplantıyı yeni bir güne taşır.
func (h *MeetingHandler) RescheduleMeeting(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	newDay, err := time.Parse(dayLayout, c.FormValue("day"))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz tarih.")
		return c.Redirect(fmt.Sprintf("/dashboard/meetings/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.Reschedule(c.UserContext(), id, newDay); err != nil {
		errMsg := "Toplantı taşınamadı: " + err.Error()
		if errors.Is(err, services.ErrMeetingExists) {
			errMsg = "Hedef günde aynı grup ve kitap için toplantı zaten var."
		} else if !errors.Is(err, services.ErrMeetingNotFound) {
			configslog.Log.Error("Dashboard - RescheduleMeeting Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(fmt.Sprintf("/dashboard/meetings/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Toplantı yeni tarihe taşındı.")
	return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
}

// GenerateEvent toplantıdan, grup şablonlarını kullanarak etkinlik üretir.
func (h *MeetingHandler) GenerateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	startHour, _ := strconv.Atoi(c.FormValue("start_hour", "19"))
	duration, _ := strconv.Atoi(c.FormValue("duration_hours", "2"))

	event, err := h.eventService.GenerateFromMeeting(c.UserContext(), id, startHour, duration)
	if err != nil {
		errMsg := "Etkinlik üretilemedi: " + err.Error()
		if errors.Is(err, services.ErrEventKeyTaken) {
			errMsg = "Bu toplantı için etkinlik zaten üretilmiş."
		} else if !errors.Is(err, services.ErrMeetingNotFound) {
			configslog.Log.Error("Dashboard - GenerateEvent Error", zap.Uint("meetingID", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik üretildi: "+event.EventKey)
	return c.Redirect(fmt.Sprintf("/dashboard/events/update/%d", event.ID), fiber.StatusSeeOther)
}

// DeleteMeeting toplantıyı siler.
func (h *MeetingHandler) DeleteMeeting(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteMeeting(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrMeetingNotFound) {
			configslog.Log.Error("Dashboard - DeleteMeeting Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Toplantı silinemedi.")
		return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Toplantı silindi.")
	return c.Redirect("/dashboard/meetings", fiber.StatusSeeOther)
}
