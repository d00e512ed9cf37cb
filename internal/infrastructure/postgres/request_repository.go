package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación de RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

const requestColumns = `id, item_id, kind, quantity, status, requester_id, justification, obra_id, approver_id, decided_at, rejection_reason, created_at`

// Create persiste un pedido pendiente.
func (r *RequestRepo) Create(request *entity.Request) error {
	query := `
		INSERT INTO requests (id, item_id, kind, quantity, status, requester_id, justification, obra_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ItemID, request.Kind, request.Quantity, request.Status,
		request.RequesterID, request.Justification, request.ObraID, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *RequestRepo) GetByID(id string) (*entity.Request, error) {
	return r.scanOne(`SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE).
// Devuelve el pedido aunque ya esté decidido, para que el workflow distinga
// AlreadyDecided de NotFound.
func (r *RequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	return r.scanOne(`SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, id)
}

// Decide escribe el estado terminal y los campos de decisión. El predicado
// status = PENDING hace la transición única también a nivel de SQL: si otra
// transacción ya decidió, RowsAffected es cero.
func (r *RequestRepo) Decide(id, status, approverID string, decidedAt time.Time, rejectionReason *string) error {
	query := `
		UPDATE requests
		SET status = $2, approver_id = $3, decided_at = $4, rejection_reason = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		id, status, approverID, decidedAt, rejectionReason, entity.RequestStatusPending,
	)
	if err != nil {
		return fmt.Errorf("decide request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyDecided
	}
	return nil
}

// ListPending pedidos pendientes con nombres resueltos, más antiguos primero.
func (r *RequestRepo) ListPending() ([]repository.RequestRow, error) {
	query := `
		SELECT ` + requestRowColumns + `
		FROM requests p
		JOIN items i ON i.id = p.item_id
		JOIN users u ON u.id = p.requester_id
		LEFT JOIN obras o ON o.id = p.obra_id
		WHERE p.status = $1
		ORDER BY p.created_at ASC`
	return r.scanRows(query, entity.RequestStatusPending)
}

// ListByRequester historial de pedidos de un solicitante, más recientes primero.
func (r *RequestRepo) ListByRequester(requesterID string) ([]repository.RequestRow, error) {
	query := `
		SELECT ` + requestRowColumns + `
		FROM requests p
		JOIN items i ON i.id = p.item_id
		JOIN users u ON u.id = p.requester_id
		LEFT JOIN obras o ON o.id = p.obra_id
		WHERE p.requester_id = $1
		ORDER BY p.created_at DESC`
	return r.scanRows(query, requesterID)
}

const requestRowColumns = `p.id, p.kind, p.status, p.quantity, p.justification, p.rejection_reason,
	       i.name, u.username, o.name, p.created_at, p.decided_at`

func (r *RequestRepo) scanOne(query string, args ...any) (*entity.Request, error) {
	var req entity.Request
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&req.ID, &req.ItemID, &req.Kind, &req.Quantity, &req.Status, &req.RequesterID,
		&req.Justification, &req.ObraID, &req.ApproverID, &req.DecidedAt, &req.RejectionReason, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

func (r *RequestRepo) scanRows(query string, args ...any) ([]repository.RequestRow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []repository.RequestRow
	for rows.Next() {
		var row repository.RequestRow
		if err := rows.Scan(&row.ID, &row.Kind, &row.Status, &row.Quantity, &row.Justification,
			&row.RejectionReason, &row.ItemName, &row.RequesterName, &row.ObraName,
			&row.CreatedAt, &row.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan request row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
