package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/obra"
)

// ObraHandler maneja las obras y su vista de consumo.
type ObraHandler struct {
	uc *obra.ObraUseCase
}

// NewObraHandler construye el handler.
func NewObraHandler(uc *obra.ObraUseCase) *ObraHandler {
	return &ObraHandler{uc: uc}
}

// Create godoc
// @Summary      Crear obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateObraRequest  true  "name, location"
// @Success      201   {object}  dto.ObraResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/obras [post]
func (h *ObraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Update godoc
// @Summary      Actualizar obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la obra"
// @Param        body  body  dto.UpdateObraRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ObraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [put]
func (h *ObraHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(o)
}

// List godoc
// @Summary      Listar obras
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ObraResponse
// @Router       /api/obras [get]
func (h *ObraHandler) List(c *fiber.Ctx) error {
	obras, err := h.uc.List(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(obras)
}

// Consumption godoc
// @Summary      Consumo de materiales de una obra
// @Description  Salidas con destino a la obra, más recientes primero, con totales.
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la obra"
// @Success      200  {object}  dto.ConsumptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/obras/{id}/consumption [get]
func (h *ObraHandler) Consumption(c *fiber.Ctx) error {
	resp, err := h.uc.Consumption(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
