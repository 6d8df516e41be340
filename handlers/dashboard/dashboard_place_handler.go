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

// PlaceHandler mekan yönetimi için handler (Dashboard).
type PlaceHandler struct {
	service services.IPlaceService
}

// NewPlaceHandler yeni bir PlaceHandler örneği oluşturur.
func NewPlaceHandler() *PlaceHandler {
	return &PlaceHandler{service: services.NewPlaceService()}
}

// ListPlaces mekanları listeler.
func (h *PlaceHandler) ListPlaces(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("name")
	}
	params.Validate()

	result, err := h.service.GetPlacesPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Mekanlar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Mekanlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Place{}}
		configslog.Log.Error("Dashboard - ListPlaces Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/places/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreatePlace mekan ekleme formunu gösterir.
func (h *PlaceHandler) ShowCreatePlace(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Mekan",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/places/create", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// CreatePlace formdan gelen mekanı kaydeder.
func (h *PlaceHandler) CreatePlace(c *fiber.Ctx) error {
	place := &models.Place{
		Name:       c.FormValue("name"),
		Address:    c.FormValue("address"),
		Map:        c.FormValue("map"),
		Directions: c.FormValue("directions"),
	}
	if err := h.service.CreatePlace(c.UserContext(), place); err != nil {
		if !errors.Is(err, services.ErrPlaceInvalidInput) {
			configslog.Log.Error("Dashboard - CreatePlace Error", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mekan oluşturulamadı: "+err.Error())
		_ = flashmessages.SetFlashFormData(c, place)
		return c.Redirect("/dashboard/places/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mekan oluşturuldu.")
	return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
}

// ShowUpdatePlace mekan düzenleme formunu gösterir.
func (h *PlaceHandler) ShowUpdatePlace(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	place, err := h.service.GetPlaceByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mekan bulunamadı.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Mekanı Düzenle",
		"Place":    place,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/places/update", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// UpdatePlace mekan kaydını günceller.
func (h *PlaceHandler) UpdatePlace(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	place, err := h.service.GetPlaceByID(c.UserContext(), id)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mekan bulunamadı.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	place.Name = c.FormValue("name", place.Name)
	place.Address = c.FormValue("address", place.Address)
	place.Map = c.FormValue("map", place.Map)
	place.Directions = c.FormValue("directions", place.Directions)

	if err := h.service.UpdatePlace(c.UserContext(), place); err != nil {
		configslog.Log.Error("Dashboard - UpdatePlace Error", zap.Uint("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(fmt.Sprintf("/dashboard/places/update/%d", id), fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mekan güncellendi.")
	return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
}

// DeletePlace mekanı siler.
func (h *PlaceHandler) DeletePlace(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	if err := h.service.DeletePlace(c.UserContext(), id); err != nil {
		if !errors.Is(err, services.ErrPlaceNotFound) {
			configslog.Log.Error("Dashboard - DeletePlace Error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mekan silinemedi.")
		return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mekan silindi.")
	return c.Redirect("/dashboard/places", fiber.StatusSeeOther)
}
