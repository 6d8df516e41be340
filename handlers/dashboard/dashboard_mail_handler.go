package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MailHandler yönlendirilen e-posta kayıtları için handler (Dashboard).
type MailHandler struct {
	service services.IForwardedMailService
}

// NewMailHandler yeni bir MailHandler örneği oluşturur.
func NewMailHandler() *MailHandler {
	return &MailHandler{service: services.NewForwardedMailService()}
}

// ListUnprocessed işlenmemiş postaları listeler.
func (h *MailHandler) ListUnprocessed(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	mails, err := h.service.ListUnprocessed(c.UserContext())
	renderData := fiber.Map{
		"Title": "Bekleyen Postalar",
		"Mails": mails,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Postalar listelenirken hata oluştu."
		configslog.Log.Error("Dashboard - ListUnprocessed Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/mails/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ProcessMail postayı seçilen sohbet hedefine aktarır.
func (h *MailHandler) ProcessMail(c *fiber.Ctx) error {
	messageID := c.FormValue("message_id")
	targetType := c.FormValue("target_type")
	targetID, _ := strconv.ParseUint(c.FormValue("target_id"), 10, 64)
	body := c.FormValue("body")

	err := h.service.ProcessToChat(c.UserContext(), messageID, targetType, uint(targetID), body)
	if err != nil {
		errMsg := "Posta işlenemedi: " + err.Error()
		switch {
		case errors.Is(err, services.ErrMailNotFound):
			errMsg = "Posta kaydı bulunamadı."
		case errors.Is(err, services.ErrMailSenderUnknown):
			errMsg = "Gönderen bir üyeyle eşleşmedi; posta reddedildi."
		default:
			configslog.Log.Error("Dashboard - ProcessMail Error", zap.String("messageID", messageID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/mails", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Posta sohbete aktarıldı.")
	return c.Redirect("/dashboard/mails", fiber.StatusSeeOther)
}

// RejectMail postayı gerekçeyle işlenmiş sayar.
func (h *MailHandler) RejectMail(c *fiber.Ctx) error {
	messageID := c.FormValue("message_id")
	reason := c.FormValue("reason", "yönetici tarafından reddedildi")

	if err := h.service.Reject(c.UserContext(), messageID, reason); err != nil {
		if !errors.Is(err, services.ErrMailNotFound) {
			configslog.Log.Error("Dashboard - RejectMail Error", zap.String("messageID", messageID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Posta reddedilemedi: "+err.Error())
		return c.Redirect("/dashboard/mails", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Posta reddedildi.")
	return c.Redirect("/dashboard/mails", fiber.StatusSeeOther)
}
