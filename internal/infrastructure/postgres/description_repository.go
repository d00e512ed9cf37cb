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

var _ repository.DescriptionRepository = (*DescriptionRepo)(nil)

// DescriptionRepo implementación de DescriptionRepository sobre PostgreSQL.
type DescriptionRepo struct {
	q Querier
}

// NewDescriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDescriptionRepository(q Querier) *DescriptionRepo {
	return &DescriptionRepo{q: q}
}

// Create persiste una descripción del catálogo.
func (r *DescriptionRepo) Create(desc *entity.Description) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO descriptions (id, name) VALUES ($1, $2)`,
		desc.ID, desc.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: desc.Name}
		}
		return fmt.Errorf("insert description: %w", err)
	}
	return nil
}

// GetByID obtiene una descripción por ID.
func (r *DescriptionRepo) GetByID(id string) (*entity.Description, error) {
	var d entity.Description
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM descriptions WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get description: %w", err)
	}
	return &d, nil
}

// List lista las descripciones ordenadas por nombre.
func (r *DescriptionRepo) List() ([]*entity.Description, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name FROM descriptions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Description
	for rows.Next() {
		var d entity.Description
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina una descripción. ErrConflict si algún ítem la referencia.
func (r *DescriptionRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM descriptions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete description: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
