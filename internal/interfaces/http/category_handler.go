package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP del bosque de categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Description  Lista plana ordenada por nombre; con tree=true devuelve el árbol anidado.
// @Tags         categories
// @Produce      json
// @Param        tree  query  bool  false  "Devolver árbol anidado"
// @Success      200   {array}   dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("tree") {
		tree, err := h.uc.Tree(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(tree)
	}
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  parentId "" la convierte en raíz. Rechaza ciclos y padres inexistentes.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la categoría"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Falla con HAS_DEPENDENTS si tiene subcategorías o productos.
// @Tags         categories
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Subcategories godoc
// @Summary      Subcategorías directas
// @Tags         categories
// @Produce      json
// @Param        id   path     string  true  "ID de la categoría"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/{id}/subcategories [get]
func (h *CategoryHandler) Subcategories(c *fiber.Ctx) error {
	out, err := h.uc.Subcategories(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Descendants godoc
// @Summary      Todas las categorías descendientes
// @Tags         categories
// @Produce      json
// @Param        id   path     string  true  "ID de la categoría"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/{id}/descendants [get]
func (h *CategoryHandler) Descendants(c *fiber.Ctx) error {
	out, err := h.uc.Descendants(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Path godoc
// @Summary      Ruta desde la raíz
// @Tags         categories
// @Produce      json
// @Param        id   path     string  true  "ID de la categoría"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/{id}/path [get]
func (h *CategoryHandler) Path(c *fiber.Ctx) error {
	out, err := h.uc.Path(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
