package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/catalog"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
)

// ItemHandler maneja las peticiones HTTP del catálogo de ítems (protegido).
type ItemHandler struct {
	uc *catalog.CatalogUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.CatalogUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem del catálogo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, description_id, unit_price, opening_quantity"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// Update godoc
// @Summary      Actualizar ítem (nombre, descripción, precio; nunca la cantidad)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// List godoc
// @Summary      Listar catálogo completo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// ListLowStock godoc
// @Summary      Listar ítems con stock bajo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "umbral (por defecto 50)"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context(), int64(c.QueryInt("threshold")))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// CreateDescription godoc
// @Summary      Crear descripción del catálogo
// @Tags         descriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDescriptionRequest  true  "name"
// @Success      201   {object}  dto.DescriptionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/descriptions [post]
func (h *ItemHandler) CreateDescription(c *fiber.Ctx) error {
	var in dto.CreateDescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	desc, err := h.uc.CreateDescription(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(desc)
}

// ListDescriptions godoc
// @Summary      Listar descripciones
// @Tags         descriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DescriptionResponse
// @Router       /api/descriptions [get]
func (h *ItemHandler) ListDescriptions(c *fiber.Ctx) error {
	descs, err := h.uc.ListDescriptions(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(descs)
}

// DeleteDescription godoc
// @Summary      Eliminar descripción
// @Tags         descriptions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la descripción"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/descriptions/{id} [delete]
func (h *ItemHandler) DeleteDescription(c *fiber.Ctx) error {
	if err := h.uc.DeleteDescription(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
