package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para historial y dashboard.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const historyQuery = `
	SELECT m.id, i.name, m.type, m.quantity, u.username, m.note, m.created_at
	FROM movements m
	JOIN items i ON i.id = m.item_id
	JOIN users u ON u.id = m.actor_id
	ORDER BY m.created_at DESC`

// ListMovements historial completo paginado, más recientes primero.
func (r *ReportRepo) ListMovements(ctx context.Context, limit, offset int) ([]repository.MovementHistoryRow, int64, error) {
	rows, err := r.pool.Query(ctx, historyQuery+` LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	list, err := scanHistoryRows(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movements`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	return list, total, nil
}

// LatestMovements las últimas n filas del historial.
func (r *ReportRepo) LatestMovements(ctx context.Context, n int) ([]repository.MovementHistoryRow, error) {
	rows, err := r.pool.Query(ctx, historyQuery+` LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("latest movements: %w", err)
	}
	return scanHistoryRows(rows)
}

// StockValuation SUM(quantity * unit_price) de todo el catálogo.
func (r *ReportRepo) StockValuation(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM items`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock valuation: %w", err)
	}
	return total, nil
}

// MovementsByType conteo de movimientos agrupado por tipo.
func (r *ReportRepo) MovementsByType(ctx context.Context) ([]repository.TypeCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, COUNT(*) FROM movements GROUP BY type ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("movements by type: %w", err)
	}
	defer rows.Close()
	var list []repository.TypeCount
	for rows.Next() {
		var tc repository.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		list = append(list, tc)
	}
	return list, rows.Err()
}

// TopConsumedItems los n ítems con mayor cantidad consumida.
func (r *ReportRepo) TopConsumedItems(ctx context.Context, n int) ([]repository.TopConsumedItem, error) {
	query := `
		SELECT i.name, SUM(m.quantity) AS total
		FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE m.type = $1
		GROUP BY i.name
		ORDER BY total DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, entity.MovementTypeConsumption, n)
	if err != nil {
		return nil, fmt.Errorf("top consumed items: %w", err)
	}
	defer rows.Close()
	var list []repository.TopConsumedItem
	for rows.Next() {
		var t repository.TopConsumedItem
		if err := rows.Scan(&t.ItemName, &t.Total); err != nil {
			return nil, fmt.Errorf("scan top consumed: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// TodayTotals entradas y salidas registradas hoy. Las compras cuentan como entrada.
func (r *ReportRepo) TodayTotals(ctx context.Context) (repository.DailyTotals, error) {
	query := `
		SELECT
		    COALESCE(SUM(quantity) FILTER (WHERE type IN ($1, $2)), 0),
		    COALESCE(SUM(quantity) FILTER (WHERE type = $3), 0)
		FROM movements
		WHERE created_at::date = CURRENT_DATE`
	var totals repository.DailyTotals
	err := r.pool.QueryRow(ctx, query,
		entity.MovementTypeReceipt, entity.MovementTypePurchase, entity.MovementTypeConsumption,
	).Scan(&totals.Receipts, &totals.Consumptions)
	if err != nil {
		return repository.DailyTotals{}, fmt.Errorf("today totals: %w", err)
	}
	return totals, nil
}

func scanHistoryRows(rows pgx.Rows) ([]repository.MovementHistoryRow, error) {
	defer rows.Close()
	var list []repository.MovementHistoryRow
	for rows.Next() {
		var h repository.MovementHistoryRow
		if err := rows.Scan(&h.MovementID, &h.ItemName, &h.Type, &h.Quantity, &h.ActorName, &h.Note, &h.Date); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
