package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler sohbet akışları için handler (Panel).
type ChatHandler struct {
	service services.IChatService
}

// NewChatHandler yeni bir ChatHandler örneği oluşturur.
func NewChatHandler() *ChatHandler {
	return &ChatHandler{service: services.NewChatService()}
}

func chatRedirectPath(targetType string, targetID uint) string {
	return fmt.Sprintf("/panel/chat/%s/%d", targetType, targetID)
}

// ShowChat hedefin sohbet akışını gösterir. Silinen mesajlar mezar taşı
// olarak listede kalır.
func (h *ChatHandler) ShowChat(c *fiber.Ctx) error {
	targetType := c.Params("targetType")
	targetID, err := parseIDParam(c, "targetId")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz sohbet hedefi.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	messages, err := h.service.ListMessages(c.UserContext(), targetType, targetID, 0)
	if err != nil {
		if !errors.Is(err, services.ErrChatInvalidInput) {
			configslog.Log.Error("Panel - ShowChat Error",
				zap.String("targetType", targetType), zap.Uint("targetID", targetID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Sohbet yüklenemedi.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":      "Sohbet",
		"TargetType": targetType,
		"TargetID":   targetID,
		"Messages":   messages,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/chat", "layouts/panel_layout", renderData, http.StatusOK)
}

// PostMessage hedefe yeni mesaj ekler.
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	targetType := c.Params("targetType")
	targetID, err := parseIDParam(c, "targetId")
	if err != nil {
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}
	message := c.FormValue("message")

	if _, err := h.service.PostMessage(c.UserContext(), userID, targetType, targetID, message); err != nil {
		if !errors.Is(err, services.ErrChatInvalidInput) {
			configslog.Log.Error("Panel - PostMessage Error",
				zap.String("targetType", targetType), zap.Uint("targetID", targetID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mesaj gönderilemedi: "+err.Error())
	}
	return c.Redirect(chatRedirectPath(targetType, targetID), fiber.StatusSeeOther)
}

// DeleteMessage mesajı mezar taşına çevirir. Yalnızca gönderen ya da
// yönetici silebilir.
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	isAdmin, _ := c.Locals("isSystem").(bool)

	messageID, err := strconv.ParseUint(c.FormValue("message_id"), 10, 64)
	if err != nil || messageID == 0 {
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}
	targetType := c.Params("targetType")
	targetID, err := parseIDParam(c, "targetId")
	if err != nil {
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	if err := h.service.DeleteMessage(c.UserContext(), uint(messageID), userID, isAdmin); err != nil {
		errMsg := "Mesaj silinemedi."
		if errors.Is(err, services.ErrChatForbidden) {
			errMsg = "Bu mesajı silme yetkiniz yok."
		} else if !errors.Is(err, services.ErrChatNotFound) {
			configslog.Log.Error("Panel - DeleteMessage Error", zap.Uint64("messageID", messageID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	}
	return c.Redirect(chatRedirectPath(targetType, targetID), fiber.StatusSeeOther)
}
