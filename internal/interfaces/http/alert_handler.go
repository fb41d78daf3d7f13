package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// AlertHandler notificaciones (montado en /api/notifications y /api/alerts).
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones
// @Description  Más recientes primero.
// @Tags         notifications
// @Produce      json
// @Param        unread  query    bool  false  "Solo no leídas"
// @Param        limit   query    int   false  "Límite (0 = todas)"
// @Success      200     {array}  dto.AlertResponse
// @Router       /api/notifications [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryBool("unread"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unread godoc
// @Summary      Notificaciones no leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/notifications/unread [get]
func (h *AlertHandler) Unread(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), true, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Cantidad de notificaciones no leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/unread-count [get]
func (h *AlertHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.uc.CountUnread(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// Create godoc
// @Summary      Crear notificación
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateAlertRequest  true  "Notificación"
// @Success      201   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Description  Idempotente.
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "ID de la notificación"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/read-all [patch]
func (h *AlertHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}
