package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// InventoryHandler ajustes de stock, historial de movimientos y reposición.
type InventoryHandler struct {
	products      *usecase.ProductUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(products *usecase.ProductUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{products: products, replenishment: replenishment}
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  quantity += delta. Con unitCost en una entrada recalcula el costo promedio.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del producto"
// @Param        body  body      dto.AdjustStockRequest  true  "delta (distinto de cero), reason, unitCost"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.products.AdjustStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Tags         inventory
// @Produce      json
// @Param        id     path     string  true   "ID del producto"
// @Param        limit  query    int     false  "Límite"  default(50)
// @Success      200    {array}  dto.StockMovementResponse
// @Failure      404    {object} dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.products.Movements(c.Context(), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos bajo el mínimo con la cantidad sugerida de pedido (stock ideal = 1.5 x mínimo),
//
//	ordenados por margen y volumen de ventas de los últimos 90 días.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.Suggestions(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
