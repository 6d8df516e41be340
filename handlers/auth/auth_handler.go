package handlers

import (
	"errors"
	"net/http"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"
	"kitapkulubu.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş/çıkış ve profil işlemleri için handler.
type AuthHandler struct {
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData, http.StatusOK)
}

// Login formdan gelen kimlik bilgilerini doğrular ve oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		errMsg := "E-posta veya şifre hatalı."
		if errors.Is(err, services.ErrUserInactive) {
			errMsg = "Hesabınız aktif değil."
		} else if !errors.Is(err, services.ErrInvalidCredentials) {
			configslog.Log.Error("Login Error", zap.String("email", email), zap.Error(err))
			errMsg = "Giriş sırasında bir hata oluştu."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: session başlatılamadı", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem); err != nil {
		configslog.Log.Error("Login: session yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	if user.IsSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout oturumu kapatır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		_ = utils.DestroySession(sess)
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile kullanıcının profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Profil", "User": user}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/profile", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisiyle değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	err := h.userService.UpdatePassword(c.UserContext(), userID, currentPassword, newPassword)
	if err != nil {
		errMsg := "Şifre güncellenemedi."
		switch {
		case errors.Is(err, services.ErrCurrentPasswordBad):
			errMsg = "Mevcut şifre hatalı."
		case errors.Is(err, services.ErrPasswordTooShort):
			errMsg = "Yeni şifre en az 8 karakter olmalı."
		default:
			configslog.Log.Error("UpdatePassword Error", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusSeeOther)
}
