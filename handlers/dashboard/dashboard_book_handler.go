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

// BookHandler kitap yönetimi için handler (Dashboard).
type BookHandler struct {
	service       services.IBookService
	authorService services.IAuthorService
}

// NewBookHandler yeni bir BookHandler örneği oluşturur.
func NewBookHandler() *BookHandler {
	return &BookHandler{
		service:       services.NewBookService(),
		authorService: services.NewAuthorService(),
	}
}

// ListBooks kitapları listeler.
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("title")
	}
	params.Validate()

	result, err := h.service.GetBooksPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Kitaplar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kitaplar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Book{}}
		configslog.Log.Error("Dashboard - ListBooks Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/books/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateBook kitap ekleme formunu, yazar listesiyle birlikte gösterir.
func (h *BookHandler) ShowCreateBook(c *fiber.Ctx) error {
	authors, err := h.authorService.GetAuthorsPaginated(c.UserContext(), queryparams.DefaultListParams("name"))
	if err != nil {
		configslog.Log.Error("Dashboard - ShowCreateBook: yazarlar alınamadı", zap.Error(err))
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Kitap",
		"Authors":  authors,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/books/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

func bookFromForm(c *fiber.Ctx) *models.Book {
	authorID, _ := strconv.ParseUint(c.FormValue("author_id"), 10, 64)
	return &models.Book{
		AuthorID: uint(authorID),
		Title:    c.FormValue("title"),
		Cover:    c.FormValue("cover"),
		Summary:  c.FormValue("summary"),
	}
}

// CreateBook formdan gelen kitabı kaydeder.
func (h *BookHandler) CreateBook(c *fiber.Ctx) error {
	book := bookFromForm(c)
	if err := h.service.CreateBook(c.UserContext(), book); err != nil {
		errMsg := "Kitap oluşturulamadı: " + err.Error()
		if !errors.Is(err, services.ErrBookInvalidInput) && !errors.Is(err, services.ErrAuthorNotFound) {
			configslog.Log.Error("Dashboard - CreateBook Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		_ = flashmessages.SetFlashFormData(c, book)
		return c.Redirect("/dashboard/books/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kitap oluşturuldu.")
	return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
}

// ShowUpdateBook kitap düzenleme formunu gösterir.
func (h *BookHandler) ShowUpdateBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	book, err := h.service.GetBookByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kitap bulunamadı.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	authors, _ := h.authorService.GetAuthorsPaginated(c.UserContext(), queryparams.DefaultListParams("name"))

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Kitabı Düzenle",
		"Book":     book,
		"Authors":  authors,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/books/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdateBook kitap kaydını günceller.
func (h *BookHandler) UpdateBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	book, err := h.service.GetBookByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kitap bulunamadı.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	if v := c.FormValue("author_id"); v != "" {
		if authorID, err := strconv.ParseUint(v, 10, 64); err == nil {
			book.AuthorID = uint(authorID)
		}
	}
	book.Title = c.FormValue("title", book.Title)
	book.Cover = c.FormValue("cover", book.Cover)
	book.Summary = c.FormValue("summary", book.Summary)

	if err := h.service.UpdateBook(c.UserContext(), book); err != nil {
		configslog.Log.Error("Dashboard - UpdateBook Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/books/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kitap güncellendi.")
	return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
}

// DeleteBook kitabı siler.
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	if err := h.service.DeleteBook(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrBookNotFound) {
			configslog.Log.Error("Dashboard - DeleteBook Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kitap silinemedi.")
		return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kitap silindi.")
	return c.Redirect("/dashboard/books", fiber.StatusSeeOther)
}
