package handlers

import (
	"net/http"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/flashmessages"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/pkg/renderer"
	"kitapkulubu.link/repositories"
	"kitapkulubu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ActivityLogHandler denetim kayıtları için handler (Dashboard).
type ActivityLogHandler struct {
	service services.IActivityLogService
}

// NewActivityLogHandler yeni bir ActivityLogHandler örneği oluşturur.
func NewActivityLogHandler() *ActivityLogHandler {
	return &ActivityLogHandler{service: services.NewActivityLogService()}
}

// ListLogs kayıtları tür ve seçici filtreleriyle listeler. Boş filtre
// koşul üretmez; tüm kayıtlar yeni tarihten eskiye sıralanır.
func (h *ActivityLogHandler) ListLogs(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("recorded_at")
	}
	params.Validate()

	filter := repositories.LogFilter{
		Type:   c.Query("type"),
		Param1: c.Query("param1"),
		Param2: c.Query("param2"),
	}
	result, err := h.service.GetLogsPaginated(c.UserContext(), filter, params)
	renderData := fiber.Map{
		"Title":  "Etkinlik Kayıtları",
		"Result": result,
		"Params": params,
		"Filter": filter,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kayıtlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.ActivityLog{}}
		configslog.Log.Error("Dashboard - ListLogs Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/logs/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}
