package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/report"
)

// ReportHandler maneja los reportes de solo lectura.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MovementHistory godoc
// @Summary      Historial completo de movimientos, paginado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (por defecto 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) MovementHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	resp, err := h.uc.MovementHistory(c.Context(), page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Dashboard godoc
// @Summary      Agregados del tablero
// @Description  Valorización del stock, totales del día, últimos movimientos y series para gráficos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
