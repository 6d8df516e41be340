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

// AuthorHandler yazar yönetimi için handler (Dashboard).
type AuthorHandler struct {
	service     services.IAuthorService
	bookService services.IBookService
}

// NewAuthorHandler yeni bir AuthorHandler örneği oluşturur.
func NewAuthorHandler() *AuthorHandler {
	return &AuthorHandler{
		service:     services.NewAuthorService(),
		bookService: services.NewBookService(),
	}
}

// ListAuthors yazarları listeler.
func (h *AuthorHandler) ListAuthors(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("name")
	}
	params.Validate()

	result, err := h.service.GetAuthorsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Yazarlar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Yazarlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Author{}}
		configslog.Log.Error("Dashboard - ListAuthors Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/authors/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateAuthor yazar ekleme formunu gösterir.
func (h *AuthorHandler) ShowCreateAuthor(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Yazar",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/authors/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreateAuthor formdan gelen yazarı kaydeder.
func (h *AuthorHandler) CreateAuthor(c *fiber.Ctx) error {
	author := &models.Author{
		Name: c.FormValue("name"),
		Link: c.FormValue("link"),
		Bio:  c.FormValue("bio"),
	}
	if err := h.service.CreateAuthor(c.UserContext(), author); err != nil {
		errMsg := "Yazar oluşturulamadı: " + err.Error()
		if !errors.Is(err, services.ErrAuthorInvalidInput) {
			configslog.Log.Error("Dashboard - CreateAuthor Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, author)
		return c.Redirect("/dashboard/authors/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazar oluşturuldu.")
	return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
}

// ShowUpdateAuthor yazar düzenleme formunu gösterir.
func (h *AuthorHandler) ShowUpdateAuthor(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	author, err := h.service.GetAuthorByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yazar bulunamadı.")
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	bookCount, _ := h.bookService.GetCountForAuthor(c.UserContext(), id)

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Yazarı Düzenle",
		"Author":    author,
		"BookCount": bookCount,
		"FormData":  flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/authors/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateAuthor yazar kaydını günceller.
func (h *AuthorHandler) UpdateAuthor(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	author, err := h.service.GetAuthorByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yazar bulunamadı.")
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	author.Name = c.FormValue("name", author.Name)
	author.Link = c.FormValue("link", author.Link)
	author.Bio = c.FormValue("bio", author.Bio)

	if err := h.service.UpdateAuthor(c.UserContext(), author); err != nil {
		configslog.Log.Error("Dashboard - UpdateAuthor Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/authors/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazar güncellendi.")
	return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
}

// DeleteAuthor yazarı siler; kitabı olan yazar silinemez.
func (h *AuthorHandler) DeleteAuthor(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteAuthor(c.UserContext(), id); err != nil {
		errMsg := "Yazar silinemedi."
		if errors.Is(err, services.ErrAuthorHasBooks) {
			errMsg = "Yazara bağlı kitaplar varken silinemez."
		} else if !errors.Is(err, services.ErrAuthorNotFound) {
			configslog.Log.Error("Dashboard - DeleteAuthor Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazar silindi.")
	return c.Redirect("/dashboard/authors", fiber.StatusSeeOther)
}
