package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/ledger"
)

// MovementHandler maneja los movimientos directos de stock (protegido).
type MovementHandler struct {
	uc *ledger.ApplyMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.ApplyMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Apply godoc
// @Summary      Registrar un movimiento de stock
// @Description  Entrada (RECEIPT/PURCHASE) o salida (CONSUMPTION). Devuelve el nuevo saldo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "item_id, type, quantity, note, obra_id"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQty, err := h.uc.Apply(c.Context(), ledger.MovementInput{
		ItemID:   in.ItemID,
		Type:     in.Type,
		Quantity: in.Quantity,
		ActorID:  GetUserID(c),
		Note:     in.Note,
		ObraID:   in.ObraID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{NewQuantity: newQty})
}

// ItemHistory godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *MovementHandler) ItemHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	movs, err := h.uc.ItemHistory(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			ActorID:   m.ActorID,
			Note:      m.Note,
			RequestID: m.RequestID,
			ObraID:    m.ObraID,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(out)
}
