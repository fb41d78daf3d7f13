package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// CompanyHandler perfil único de la empresa.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener perfil de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o reemplazar el perfil de la empresa
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CompanyRequest  true  "Perfil"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [post]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
