package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler üye yönetimi için handler (Dashboard).
type MemberHandler struct {
	service     services.IMemberService
	rsvpService services.IRSVPService
}

// NewMemberHandler yeni bir MemberHandler örneği oluşturur.
func NewMemberHandler() *MemberHandler {
	return &MemberHandler{
		service:     services.NewMemberService(),
		rsvpService: services.NewRSVPService(),
	}
}

// ListMembers üyeleri listeler.
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("name")
	}
	params.Validate()

	result, err := h.service.GetMembersPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Üyeler",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Üyeler listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Member{}}
		configslog.Log.Error("Dashboard - ListMembers Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/members/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateMember üye ekleme formunu gösterir.
func (h *MemberHandler) ShowCreateMember(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Üye",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/members/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreateMember üyeyi yönetici adına kaydeder; web anahtarı üretilir.
func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")

	member, err := h.service.SignupMember(c.UserContext(), name, email)
	if err != nil {
		errMsg := "Üye oluşturulamadı: " + err.Error()
		if errors.Is(err, services.ErrMemberEmailTaken) {
			errMsg = "Bu e-posta ile kayıtlı üye zaten var."
		} else if !errors.Is(err, services.ErrMemberInvalidInput) {
			configslog.Log.Error("Dashboard - CreateMember Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/members/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye oluşturuldu: "+member.WebKey)
	return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
}

// ShowUpdateMember üye düzenleme formunu, üyenin RSVP geçmişiyle gösterir.
func (h *MemberHandler) ShowUpdateMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	member, err := h.service.GetMemberByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye bulunamadı.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	participations, err := h.rsvpService.ListByMember(c.UserContext(), id)
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateMember: katılımlar alınamadı", zap.Uint("id", id), zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":          "Üyeyi Düzenle",
		"Member":         member,
		"Participations": participations,
		"FormData":       flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/members/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateMember üye kaydını günceller; web anahtarı değişmez.
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	member, err := h.service.GetMemberByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye bulunamadı.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	member.Name = c.FormValue("name", member.Name)
	member.Email = c.FormValue("email", member.Email)
	member.Active = formBool(c, "active")
	member.HTMLFormat = formBool(c, "html_format")
	member.ICal = formBool(c, "ical")
	member.NoEmail = formBool(c, "no_email")

	if err := h.service.UpdateMember(c.UserContext(), member); err != nil {
		configslog.Log.Error("Dashboard - UpdateMember Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/members/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye güncellendi.")
	return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
}

// DeleteMember üyeyi ve bağlı kayıtlarını siler.
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteMember(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrMemberNotFound) {
			configslog.Log.Error("Dashboard - DeleteMember Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye silinemedi.")
		return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye silindi.")
	return c.Redirect("/dashboard/members", fiber.StatusSeeOther)
}
