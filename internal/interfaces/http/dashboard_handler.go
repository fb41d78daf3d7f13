package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// DashboardHandler KPIs de la pantalla principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  Totales del catálogo, valor del inventario, ventas del día y del mes,
//
//	productos más vendidos, stock bajo y últimas notificaciones.
//
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
