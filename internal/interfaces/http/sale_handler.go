package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/sales"
)

// SaleHandler maneja ventas y líneas de venta.
type SaleHandler struct {
	rec *sales.Recorder
}

// NewSaleHandler construye el handler.
func NewSaleHandler(rec *sales.Recorder) *SaleHandler {
	return &SaleHandler{rec: rec}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        from    query    string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to      query    string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit   query    int     false  "Límite"  default(100)
// @Param        offset  query    int     false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Failure      400     {object} dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	if err := validateStruct(q); err != nil {
		return writeError(c, err)
	}
	if q.Limit == 0 {
		q.Limit = 100
	}
	out, err := h.rec.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Cabecera con líneas opcionales; todo o nada. Cada línea descuenta stock.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.rec.CreateSale(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.rec.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.rec.UpdateSale(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Borra también sus líneas. El stock consumido no se repone.
// @Tags         sales
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.rec.DeleteSale(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems godoc
// @Summary      Líneas de una venta
// @Tags         sales
// @Produce      json
// @Param        saleId  path     string  true  "ID de la venta"
// @Success      200     {array}  dto.SaleItemResponse
// @Failure      404     {object} dto.ErrorResponse
// @Router       /api/sales/{saleId}/items [get]
func (h *SaleHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.rec.ListItems(c.Context(), c.Params("saleId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea a una venta
// @Description  Persiste la línea y descuenta el stock en una transacción; puede emitir alerta.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddSaleItemRequest  true  "Línea"
// @Success      201   {object}  dto.AddSaleItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/items [post]
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddSaleItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.rec.AddItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar línea de venta
// @Description  El stock consumido no se repone.
// @Tags         sales
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/items/{id} [delete]
func (h *SaleHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.rec.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
