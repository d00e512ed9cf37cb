package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovementHistoryRow fila del historial general de movimientos.
type MovementHistoryRow struct {
	MovementID string
	ItemName   string
	Type       string
	Quantity   int64
	ActorName  string
	Note       string
	Date       time.Time
}

// TypeCount conteo de movimientos por tipo (datos de gráfico).
type TypeCount struct {
	Type  string
	Count int64
}

// TopConsumedItem ítem con mayor salida acumulada (datos de gráfico).
type TopConsumedItem struct {
	ItemName string
	Total    int64
}

// DailyTotals total de entradas y salidas del día en curso.
type DailyTotals struct {
	Receipts     int64
	Consumptions int64
}

// ReportRepository define las consultas de solo lectura para reportes y
// dashboard. Las implementaciones no modifican datos.
type ReportRepository interface {
	// ListMovements historial completo paginado, más recientes primero.
	// Devuelve también el total de filas para calcular páginas.
	ListMovements(ctx context.Context, limit, offset int) ([]MovementHistoryRow, int64, error)
	// LatestMovements las últimas n filas del historial.
	LatestMovements(ctx context.Context, n int) ([]MovementHistoryRow, error)
	// StockValuation SUM(quantity * unit_price) de todo el catálogo.
	StockValuation(ctx context.Context) (decimal.Decimal, error)
	// MovementsByType conteo de movimientos agrupado por tipo.
	MovementsByType(ctx context.Context) ([]TypeCount, error)
	// TopConsumedItems los n ítems con mayor cantidad consumida.
	TopConsumedItems(ctx context.Context, n int) ([]TopConsumedItem, error)
	// TodayTotals entradas y salidas registradas hoy.
	TodayTotals(ctx context.Context) (DailyTotals, error)
}
