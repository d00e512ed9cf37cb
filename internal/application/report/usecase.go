package report

import (
	"context"

	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// topConsumedLimit cuántos ítems mostrar en el gráfico de mayor consumo.
const topConsumedLimit = 5

// ReportUseCase consultas de solo lectura para historial y dashboard.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// MovementHistory historial completo de movimientos, paginado, más recientes primero.
func (uc *ReportUseCase) MovementHistory(ctx context.Context, page dto.PageRequest) (*dto.MovementHistoryResponse, error) {
	page.DefaultPage()
	rows, total, err := uc.repo.ListMovements(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementHistoryResponse{
		Movements: toHistoryDTOs(rows),
		Total:     total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, nil
}

// Dashboard agregados del tablero: valorización del stock, totales del día,
// últimos movimientos y series para gráficos.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	valuation, err := uc.repo.StockValuation(ctx)
	if err != nil {
		return nil, err
	}
	today, err := uc.repo.TodayTotals(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := uc.repo.LatestMovements(ctx, 5)
	if err != nil {
		return nil, err
	}
	byType, err := uc.repo.MovementsByType(ctx)
	if err != nil {
		return nil, err
	}
	topConsumed, err := uc.repo.TopConsumedItems(ctx, topConsumedLimit)
	if err != nil {
		return nil, err
	}

	typeSeries := dto.ChartSeriesDTO{}
	for _, tc := range byType {
		typeSeries.Labels = append(typeSeries.Labels, tc.Type)
		typeSeries.Data = append(typeSeries.Data, tc.Count)
	}
	topSeries := dto.ChartSeriesDTO{}
	for _, t := range topConsumed {
		topSeries.Labels = append(topSeries.Labels, t.ItemName)
		topSeries.Data = append(topSeries.Data, t.Total)
	}

	return &dto.DashboardResponse{
		StockValuation:   valuation,
		TodayReceipts:    today.Receipts,
		TodayConsumption: today.Consumptions,
		Latest:           toHistoryDTOs(latest),
		MovementsByType:  typeSeries,
		TopConsumed:      topSeries,
	}, nil
}

func toHistoryDTOs(rows []repository.MovementHistoryRow) []dto.MovementHistoryDTO {
	out := make([]dto.MovementHistoryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementHistoryDTO{
			MovementID: r.MovementID,
			ItemName:   r.ItemName,
			Type:       r.Type,
			Quantity:   r.Quantity,
			ActorName:  r.ActorName,
			Note:       r.Note,
			Date:       r.Date,
		})
	}
	return out
}
