package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo inserta y consulta: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, type, quantity, actor_id, note, request_id, obra_id, created_at`

// Create agrega un movimiento al libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, type, quantity, actor_id, note, request_id, obra_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.Type, movement.Quantity,
		movement.ActorID, movement.Note, movement.RequestID, movement.ObraID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+movementColumns+` FROM movements WHERE id = $1`, id,
	).Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.ActorID, &m.Note, &m.RequestID, &m.ObraID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByItem lista movimientos de un ítem, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+movementColumns+` FROM movements WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		itemID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.ActorID, &m.Note, &m.RequestID, &m.ObraID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListConsumptionByObra lista salidas con destino a la obra, más recientes
// primero, con nombres de ítem y actor resueltos por join.
func (r *MovementRepo) ListConsumptionByObra(obraID string) ([]repository.ConsumptionRow, error) {
	query := `
		SELECT m.id, i.name, m.quantity, u.username, m.note, m.created_at
		FROM movements m
		JOIN items i ON i.id = m.item_id
		JOIN users u ON u.id = m.actor_id
		WHERE m.type = $1 AND m.obra_id = $2
		ORDER BY m.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, entity.MovementTypeConsumption, obraID)
	if err != nil {
		return nil, fmt.Errorf("list consumption by obra: %w", err)
	}
	defer rows.Close()
	var list []repository.ConsumptionRow
	for rows.Next() {
		var c repository.ConsumptionRow
		if err := rows.Scan(&c.MovementID, &c.ItemName, &c.Quantity, &c.ActorName, &c.Note, &c.Date); err != nil {
			return nil, fmt.Errorf("scan consumption row: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
