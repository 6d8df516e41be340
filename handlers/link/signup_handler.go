package handlers

import (
	"errors"
	"net/http"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignupHandler açık üye kaydı için handler.
type SignupHandler struct {
	memberService services.IMemberService
	logService    services.IActivityLogService
}

// NewSignupHandler yeni bir SignupHandler örneği oluşturur.
func NewSignupHandler() *SignupHandler {
	return &SignupHandler{
		memberService: services.NewMemberService(),
		logService:    services.NewActivityLogService(),
	}
}

// ShowSignup kayıt formunu gösterir.
func (h *SignupHandler) ShowSignup(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Kulübe Katıl",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "link/signup", "layouts/link_layout", renderData, http.StatusOK)
}

// Signup yeni üye kaydını işler ve üyeye web anahtarını gösterir.
func (h *SignupHandler) Signup(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")

	member, err := h.memberService.SignupMember(c.UserContext(), name, email)
	if err != nil {
		errMsg := "Kayıt tamamlanamadı: " + err.Error()
		if errors.Is(err, services.ErrMemberEmailTaken) {
			errMsg = "Bu e-posta ile kayıtlı üye zaten var."
		} else if !errors.Is(err, services.ErrMemberInvalidInput) {
			configslog.Log.Error("Link - Signup Error", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/signup", fiber.StatusSeeOther)
	}

	if logErr := h.logService.Record(c.UserContext(), services.LogTypeSignup,
		member.Email, "", "", ""); logErr != nil {
		configslog.Log.Warn("Link - Signup: denetim kaydı yazılamadı", zap.Error(logErr))
	}

	return renderer.Render(c, "link/signup_done", "layouts/link_layout", fiber.Map{
		"Title":  "Kayıt Tamamlandı",
		"Member": member,
	}, http.StatusOK)
}
