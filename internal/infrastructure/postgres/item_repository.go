package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, description_id, unit_price, quantity, created_at, updated_at`

// Create persiste un ítem. La cantidad inicial siempre es cero: el saldo de
// apertura entra como movimiento.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, description_id, unit_price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.DescriptionID, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: item.Name}
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.scanOne(`SELECT ` + itemColumns + ` FROM items WHERE id = $1`, id)
}

// GetByName obtiene un ítem por nombre exacto.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	return r.scanOne(`SELECT `+itemColumns+` FROM items WHERE name = $1`, name)
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.scanOne(`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza nombre, descripción y precio. Nunca la cantidad.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description_id = $3, unit_price = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.DescriptionID, item.UnitPrice, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: item.Name}
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe el nuevo saldo del ítem. Solo debe llamarse desde el
// motor de movimientos, dentro de la transacción que inserta el movimiento.
func (r *ItemRepo) UpdateQuantity(id string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo completo ordenado por nombre.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	return r.scanMany(`SELECT ` + itemColumns + ` FROM items ORDER BY name`)
}

// ListLowStock lista ítems con cantidad igual o menor al umbral, ascendente.
func (r *ItemRepo) ListLowStock(threshold int64) ([]*entity.Item, error) {
	return r.scanMany(`SELECT `+itemColumns+` FROM items WHERE quantity <= $1 ORDER BY quantity ASC`, threshold)
}

func (r *ItemRepo) scanOne(query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.Name, &it.DescriptionID, &it.UnitPrice, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) scanMany(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.DescriptionID, &it.UnitPrice, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
