package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CampaignHandler kampanya yönetimi ve toplu gönderim için handler (Dashboard).
type CampaignHandler struct {
	service       services.ICampaignService
	senderService services.ISenderService
}

// NewCampaignHandler yeni bir CampaignHandler örneği oluşturur.
func NewCampaignHandler() *CampaignHandler {
	return &CampaignHandler{
		service:       services.NewCampaignService(),
		senderService: services.NewSenderService(),
	}
}

// ListCampaigns kampanyaları listeler.
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetCampaignsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":         "Kampanyalar",
		"Result":        result,
		"Params":        params,
		"LastMailError": services.LastMailError(),
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kampanyalar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Campaign{}}
		configslog.Log.Error("Dashboard - ListCampaigns Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/campaigns/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateCampaign kampanya ekleme formunu gösterir.
func (h *CampaignHandler) ShowCreateCampaign(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Kampanya",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/campaigns/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreateCampaign formdan gelen kampanyayı kaydeder.
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	campaign := &models.Campaign{
		Subject: c.FormValue("subject"),
		Body:    c.FormValue("body"),
	}
	if err := h.service.CreateCampaign(c.UserContext(), campaign); err != nil {
		if !errors.Is(err, services.ErrCampaignInvalidInput) {
			configslog.Log.Error("Dashboard - CreateCampaign Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kampanya oluşturulamadı: "+err.Error())
		_ = flashmessages.SetFlashFormData(c, campaign)
		return c.Redirect("/dashboard/campaigns/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kampanya oluşturuldu.")
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", campaign.ID), fiber.StatusSeeOther)
}

// ShowUpdateCampaign kampanya düzenleme formunu, alıcı listesi ve gönderim
// durumuyla birlikte gösterir.
func (h *CampaignHandler) ShowUpdateCampaign(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	campaign, err := h.service.GetCampaignByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kampanya bulunamadı.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	recipients, err := h.service.ListRecipients(c.UserContext(), id)
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateCampaign: alıcılar alınamadı", zap.Uint("id", id), zap.Error(err))
	}
	sending, _ := h.senderService.IsCampaignSending(c.UserContext(), id)

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":      "Kampanyayı Düzenle",
		"Campaign":   campaign,
		"Recipients": recipients,
		"Sending":    sending,
		"FormData":   flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/campaigns/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateCampaign kampanya kaydını günceller.
func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	campaign, err := h.service.GetCampaignByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kampanya bulunamadı.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	campaign.Subject = c.FormValue("subject", campaign.Subject)
	campaign.Body = c.FormValue("body", campaign.Body)

	if err := h.service.UpdateCampaign(c.UserContext(), campaign); err != nil {
		configslog.Log.Error("Dashboard - UpdateCampaign Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kampanya güncellendi.")
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// DeleteCampaign kampanyayı siler.
func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	if sending, _ := h.senderService.IsCampaignSending(c.UserContext(), id); sending {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gönderimi süren kampanya silinemez.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteCampaign(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrCampaignNotFound) {
			configslog.Log.Error("Dashboard - DeleteCampaign Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kampanya silinemedi.")
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kampanya silindi.")
	return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
}

// AddRecipient tek üyeyi alıcı olarak ekler.
func (h *CampaignHandler) AddRecipient(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.AddRecipient(c.UserContext(), id, uint(memberID)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Alıcı eklenemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Alıcı eklendi.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// RemoveRecipient alıcıyı kampanyadan çıkarır.
func (h *CampaignHandler) RemoveRecipient(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.RemoveRecipient(c.UserContext(), id, uint(memberID)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Alıcı çıkarılamadı: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Alıcı çıkarıldı.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// TargetRecipients alıcı listesini topluca doldurur: tüm aktif üyeler ya da
// seçilen grubun üyeleri.
func (h *CampaignHandler) TargetRecipients(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	var added int
	if v := c.FormValue("group_id"); v != "" {
		groupID, parseErr := strconv.ParseUint(v, 10, 64)
		if parseErr != nil || groupID == 0 {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz grup.")
			return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
		}
		added, err = h.service.TargetGroup(c.UserContext(), id, uint(groupID))
	} else {
		added, err = h.service.TargetAllActive(c.UserContext(), id)
	}
	if err != nil {
		configslog.Log.Error("Dashboard - TargetRecipients Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Alıcılar eklenemedi: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, fmt.Sprintf("%d alıcı eklendi.", added))
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// StartSend toplu gönderimi arka planda başlatır.
func (h *CampaignHandler) StartSend(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	if err := h.senderService.StartCampaignSend(c.UserContext(), id); err != nil {
		errMsg := "Gönderim başlatılamadı: " + err.Error()
		switch {
		case errors.Is(err, services.ErrSendAlreadyRunning):
			errMsg = "Bu kampanya için gönderim zaten sürüyor."
		case errors.Is(err, services.ErrSendNothingToDo):
			errMsg = "Gönderilecek alıcı yok."
		case errors.Is(err, services.ErrCampaignNotFound):
			errMsg = "Kampanya bulunamadı."
		default:
			configslog.Log.Error("Dashboard - StartSend Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gönderim başlatıldı.")
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// CancelSend süren gönderimi işbirlikli durdurur.
func (h *CampaignHandler) CancelSend(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	if err := h.senderService.CancelCampaignSend(c.UserContext(), id); err != nil {
		configslog.Log.Error("Dashboard - CancelSend Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gönderim durdurulamadı: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gönderim durduruluyor.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}

// ClearSent gönderim damgalarını temizler (yeniden gönderim hazırlığı).
func (h *CampaignHandler) ClearSent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/campaigns", fiber.StatusSeeOther)
	}
	if sending, _ := h.senderService.IsCampaignSending(c.UserContext(), id); sending {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gönderim sürerken damgalar temizlenemez.")
		return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.ClearSent(c.UserContext(), id); err != nil {
		configslog.Log.Error("Dashboard - ClearSent Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Damgalar temizlenemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gönderim damgaları temizlendi.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/campaigns/update/%d", id), fiber.StatusSeeOther)
}
