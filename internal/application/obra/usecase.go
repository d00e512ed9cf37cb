package obra

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// ObraUseCase CRUD de obras y vista de consumo. La vista es de solo lectura:
// una función del libro de movimientos filtrado por obra, sin estado propio.
type ObraUseCase struct {
	obraRepo repository.ObraRepository
	movRepo  repository.MovementRepository
	recorder audit.Recorder
}

// NewObraUseCase construye el caso de uso.
func NewObraUseCase(obraRepo repository.ObraRepository, movRepo repository.MovementRepository, recorder audit.Recorder) *ObraUseCase {
	return &ObraUseCase{obraRepo: obraRepo, movRepo: movRepo, recorder: recorder}
}

// Create crea una obra con nombre único.
func (uc *ObraUseCase) Create(ctx context.Context, actorID string, in dto.CreateObraRequest) (*dto.ObraResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	obra := &entity.Obra{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: time.Now(),
	}
	if err := uc.obraRepo.Create(obra); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionCreateObra,
		fmt.Sprintf("obra=%s nombre=%s", obra.ID, obra.Name))
	return toResponse(obra), nil
}

// Update actualiza nombre y ubicación de una obra.
func (uc *ObraUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateObraRequest) (*dto.ObraResponse, error) {
	obra, err := uc.obraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		obra.Name = *in.Name
	}
	if in.Location != nil {
		obra.Location = *in.Location
	}
	if err := uc.obraRepo.Update(obra); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionUpdateObra,
		fmt.Sprintf("obra=%s nombre=%s", obra.ID, obra.Name))
	return toResponse(obra), nil
}

// List lista las obras, alfabético.
func (uc *ObraUseCase) List(ctx context.Context) ([]dto.ObraResponse, error) {
	obras, err := uc.obraRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ObraResponse, 0, len(obras))
	for _, o := range obras {
		out = append(out, *toResponse(o))
	}
	return out, nil
}

// Consumption devuelve los consumos con destino a la obra, más recientes
// primero, con totales derivados de las mismas filas listadas.
func (uc *ObraUseCase) Consumption(ctx context.Context, obraID string) (*dto.ConsumptionResponse, error) {
	obra, err := uc.obraRepo.GetByID(obraID)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.movRepo.ListConsumptionByObra(obraID)
	if err != nil {
		return nil, err
	}

	movements := make([]dto.ConsumptionMovementDTO, 0, len(rows))
	seen := make(map[string]struct{})
	var total int64
	for _, r := range rows {
		movements = append(movements, dto.ConsumptionMovementDTO{
			MovementID: r.MovementID,
			ItemName:   r.ItemName,
			Quantity:   r.Quantity,
			ActorName:  r.ActorName,
			Note:       r.Note,
			Date:       r.Date,
		})
		seen[r.ItemName] = struct{}{}
		total += r.Quantity
	}
	return &dto.ConsumptionResponse{
		Obra:          *toResponse(obra),
		Movements:     movements,
		ItemCount:     len(seen),
		TotalQuantity: total,
	}, nil
}

func toResponse(o *entity.Obra) *dto.ObraResponse {
	return &dto.ObraResponse{ID: o.ID, Name: o.Name, Location: o.Location}
}
