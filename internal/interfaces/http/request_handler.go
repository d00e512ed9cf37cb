package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/request"
)

// RequestHandler maneja el flujo de pedidos: solicitar, aprobar, rechazar, listar.
type RequestHandler struct {
	uc *request.WorkflowUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.WorkflowUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Submit godoc
// @Summary      Crear un pedido de compra o retiro
// @Description  El stock no se verifica al solicitar; se verifica al aprobar.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitRequestRequest  true  "kind, item_id, quantity, justification, obra_id"
// @Success      201   {object}  dto.SubmitRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Approve godoc
// @Summary      Aprobar un pedido pendiente
// @Description  Aplica el movimiento y marca el pedido como aprobado en la misma transacción.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject godoc
// @Summary      Rechazar un pedido pendiente
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del pedido"
// @Param        body  body  dto.RejectRequestRequest  true  "reason (obligatorio)"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Reason); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPending godoc
// @Summary      Listar pedidos pendientes (más antiguos primero)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/pending [get]
func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	reqs, err := h.uc.ListPending(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(reqs)
}

// ListMine godoc
// @Summary      Listar los pedidos del usuario autenticado (más recientes primero)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/mine [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	reqs, err := h.uc.ByRequester(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(reqs)
}
