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

// GroupHandler grup ve üyelik yönetimi için handler (Dashboard).
type GroupHandler struct {
	service services.IGroupService
}

// NewGroupHandler yeni bir GroupHandler örneği oluşturur.
func NewGroupHandler() *GroupHandler {
	return &GroupHandler{service: services.NewGroupService()}
}

// ListGroups grupları listeler.
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("group_no")
	}
	params.Validate()

	result, err := h.service.GetGroupsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Gruplar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Gruplar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Group{}}
		configslog.Log.Error("Dashboard - ListGroups Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/groups/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateGroup grup ekleme formunu gösterir.
func (h *GroupHandler) ShowCreateGroup(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Grup",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/groups/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

func groupFromForm(c *fiber.Ctx, group *models.Group) {
	if v := c.FormValue("group_no"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			group.GroupNo = n
		}
	}
	if v := c.FormValue("type"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			group.Type = models.GroupType(n)
		}
	}
	group.Tag = c.FormValue("tag", group.Tag)
	group.Description = c.FormValue("description", group.Description)
	group.URL = c.FormValue("url", group.URL)
	group.EventKeyTemplate = c.FormValue("event_key_template", group.EventKeyTemplate)
	group.EventSummaryTemplate = c.FormValue("event_summary_template", group.EventSummaryTemplate)
	group.EventBodyTemplate = c.FormValue("event_body_template", group.EventBodyTemplate)
	if v := c.FormValue("default_max_attend"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			group.DefaultMaxAttend = n
		}
	}
}

// CreateGroup formdan gelen grubu kaydeder. Grup numarası türün
// aralığında olmak zorundadır.
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	group := &models.Group{}
	groupFromForm(c, group)
	if err := h.service.CreateGroup(c.UserContext(), group); err != nil {
		errMsg := "Grup oluşturulamadı: " + err.Error()
		if !errors.Is(err, services.ErrGroupInvalidInput) &&
			!errors.Is(err, services.ErrGroupNoOutOfRange) &&
			!errors.Is(err, services.ErrGroupNoTaken) {
			configslog.Log.Error("Dashboard - CreateGroup Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, group)
		return c.Redirect("/dashboard/groups/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Grup oluşturuldu.")
	return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
}

// ShowUpdateGroup grup düzenleme formunu gösterir.
func (h *GroupHandler) ShowUpdateGroup(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	group, err := h.service.GetGroupByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Grup bulunamadı.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Grubu Düzenle",
		"Group":    group,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/groups/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateGroup grup kaydını günceller.
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	group, err := h.service.GetGroupByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Grup bulunamadı.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	groupFromForm(c, group)

	if err := h.service.UpdateGroup(c.UserContext(), group); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		if !errors.Is(err, services.ErrGroupNoOutOfRange) && !errors.Is(err, services.ErrGroupNoTaken) {
			configslog.Log.Error("Dashboard - UpdateGroup Error", zap.Uint("id", id), zap.Error(err))
		}
		return c.Redirect(fmt.Sprintf("/dashboard/groups/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Grup güncellendi.")
	return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
}

// DeleteGroup grubu ve üyelik kayıtlarını siler.
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteGroup(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrGroupNotFound) {
			configslog.Log.Error("Dashboard - DeleteGroup Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Grup silinemedi.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Grup silindi.")
	return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
}

// ShowMembership tüm üyeleri, gruba üyelik durumlarıyla listeler.
// Üyelikler tek listede işaretlenerek yönetilir.
func (h *GroupHandler) ShowMembership(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	group, err := h.service.GetGroupByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Grup bulunamadı.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	rows, err := h.service.GetMembershipList(c.UserContext(), id)
	if err != nil {
		configslog.Log.Error("Dashboard - ShowMembership Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üyelik listesi alınamadı.")
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":   "Grup Üyeleri: " + group.Tag,
		"Group":   group,
		"Members": rows,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/groups/members", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// AddMember üyeyi gruba ekler.
func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/groups/members/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.AddMember(c.UserContext(), id, uint(memberID)); err != nil {
		configslog.Log.Error("Dashboard - AddMember Error", zap.Uint("groupID", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye eklenemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye gruba eklendi.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/groups/members/%d", id), fiber.StatusSeeOther)
}

// RemoveMember üyeyi gruptan çıkarır.
func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Redirect("/dashboard/groups", fiber.StatusSeeOther)
	}
	memberID, err := strconv.ParseUint(c.FormValue("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye.")
		return c.Redirect(fmt.Sprintf("/dashboard/groups/members/%d", id), fiber.StatusSeeOther)
	}
	if err := h.service.RemoveMember(c.UserContext(), id, uint(memberID)); err != nil {
		configslog.Log.Error("Dashboard - RemoveMember Error", zap.Uint("groupID", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye çıkarılamadı: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye gruptan çıkarıldı.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/groups/members/%d", id), fiber.StatusSeeOther)
}
