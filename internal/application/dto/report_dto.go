package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementHistoryDTO fila del historial general de movimientos.
type MovementHistoryDTO struct {
	MovementID string    `json:"movement_id"`
	ItemName   string    `json:"item_name"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	ActorName  string    `json:"actor_name"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `json:"date"`
}

// MovementHistoryResponse historial paginado.
type MovementHistoryResponse struct {
	Movements []MovementHistoryDTO `json:"movements"`
	Total     int64                `json:"total"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

// ChartSeriesDTO pares etiqueta/valor para gráficos del dashboard.
type ChartSeriesDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// DashboardResponse agregados para el tablero de reportes.
type DashboardResponse struct {
	StockValuation   decimal.Decimal      `json:"stock_valuation"`
	TodayReceipts    int64                `json:"today_receipts"`
	TodayConsumption int64                `json:"today_consumption"`
	Latest           []MovementHistoryDTO `json:"latest_movements"`
	MovementsByType  ChartSeriesDTO       `json:"movements_by_type"`
	TopConsumed      ChartSeriesDTO       `json:"top_consumed"`
}
