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

var _ repository.ObraRepository = (*ObraRepo)(nil)

// ObraRepo implementación de ObraRepository sobre PostgreSQL.
type ObraRepo struct {
	q Querier
}

// NewObraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewObraRepository(q Querier) *ObraRepo {
	return &ObraRepo{q: q}
}

// Create persiste una obra.
func (r *ObraRepo) Create(obra *entity.Obra) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO obras (id, name, location, created_at) VALUES ($1, $2, $3, $4)`,
		obra.ID, obra.Name, obra.Location, obra.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: obra.Name}
		}
		return fmt.Errorf("insert obra: %w", err)
	}
	return nil
}

// GetByID obtiene una obra por ID.
func (r *ObraRepo) GetByID(id string) (*entity.Obra, error) {
	var o entity.Obra
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, location, created_at FROM obras WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.Location, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obra: %w", err)
	}
	return &o, nil
}

// Update actualiza nombre y ubicación.
func (r *ObraRepo) Update(obra *entity.Obra) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE obras SET name = $2, location = $3 WHERE id = $1`,
		obra.ID, obra.Name, obra.Location,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: obra.Name}
		}
		return fmt.Errorf("update obra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las obras ordenadas por nombre.
func (r *ObraRepo) List() ([]*entity.Obra, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, location, created_at FROM obras ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list obras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Obra
	for rows.Next() {
		var o entity.Obra
		if err := rows.Scan(&o.ID, &o.Name, &o.Location, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan obra: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
