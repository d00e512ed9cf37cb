package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/ledger"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// DefaultLowStockThreshold umbral por defecto para el listado de stock bajo.
const DefaultLowStockThreshold = 50

// CatalogUseCase CRUD de ítems y descripciones. La cantidad de un ítem no se
// toca aquí: el saldo inicial entra como movimiento vía el motor, y después
// solo cambia por movimientos.
type CatalogUseCase struct {
	itemRepo repository.ItemRepository
	descRepo repository.DescriptionRepository
	ledger   *ledger.ApplyMovementUseCase
	recorder audit.Recorder
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	itemRepo repository.ItemRepository,
	descRepo repository.DescriptionRepository,
	ledger *ledger.ApplyMovementUseCase,
	recorder audit.Recorder,
) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo, descRepo: descRepo, ledger: ledger, recorder: recorder}
}

// CreateItem crea un ítem con cantidad cero y, si hay saldo inicial, lo
// registra como un movimiento de entrada. Así el saldo de apertura queda
// trazado en el libro igual que cualquier otra entrada.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OpeningQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateNameError{Name: in.Name}
	}
	if in.DescriptionID != nil {
		desc, err := uc.descRepo.GetByID(*in.DescriptionID)
		if err != nil {
			return nil, err
		}
		if desc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          in.Name,
		DescriptionID: in.DescriptionID,
		UnitPrice:     in.UnitPrice,
		Quantity:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionCreateItem,
		fmt.Sprintf("item=%s nombre=%s", item.ID, item.Name))

	if in.OpeningQuantity > 0 {
		newQty, err := uc.ledger.Apply(ctx, ledger.MovementInput{
			ItemID:   item.ID,
			Type:     entity.MovementTypeReceipt,
			Quantity: in.OpeningQuantity,
			ActorID:  actorID,
			Note:     "Saldo inicial de almacén.",
		})
		if err != nil {
			return nil, err
		}
		item.Quantity = newQty
	}
	return uc.toResponse(item), nil
}

// GetItem obtiene un ítem por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(item), nil
}

// UpdateItem actualiza nombre, descripción y precio. Nunca la cantidad.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, actorID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.DescriptionID != nil {
		desc, err := uc.descRepo.GetByID(*in.DescriptionID)
		if err != nil {
			return nil, err
		}
		if desc == nil {
			return nil, domain.ErrNotFound
		}
		item.DescriptionID = in.DescriptionID
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = *in.UnitPrice
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, actorID, audit.ActionUpdateItem,
		fmt.Sprintf("item=%s nombre=%s", item.ID, item.Name))
	return uc.toResponse(item), nil
}

// ListItems lista el catálogo completo, alfabético, con nombre de descripción resuelto.
func (uc *CatalogUseCase) ListItems(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	descNames, err := uc.descriptionNames()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp := *uc.toResponse(item)
		if item.DescriptionID != nil {
			resp.Description = descNames[*item.DescriptionID]
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListLowStock lista ítems con cantidad igual o menor al umbral, ascendente.
// threshold <= 0 usa el umbral por defecto.
func (uc *CatalogUseCase) ListLowStock(ctx context.Context, threshold int64) ([]dto.ItemResponse, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	items, err := uc.itemRepo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *uc.toResponse(item))
	}
	return out, nil
}

// CreateDescription crea una descripción del catálogo.
func (uc *CatalogUseCase) CreateDescription(ctx context.Context, actorID string, in dto.CreateDescriptionRequest) (*dto.DescriptionResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	desc := &entity.Description{ID: uuid.New().String(), Name: in.Name}
	if err := uc.descRepo.Create(desc); err != nil {
		return nil, err
	}
	return &dto.DescriptionResponse{ID: desc.ID, Name: desc.Name}, nil
}

// ListDescriptions lista las descripciones, alfabético.
func (uc *CatalogUseCase) ListDescriptions(ctx context.Context) ([]dto.DescriptionResponse, error) {
	descs, err := uc.descRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DescriptionResponse, 0, len(descs))
	for _, d := range descs {
		out = append(out, dto.DescriptionResponse{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// DeleteDescription elimina una descripción. Falla con ErrConflict si algún
// ítem la referencia.
func (uc *CatalogUseCase) DeleteDescription(ctx context.Context, id string) error {
	return uc.descRepo.Delete(id)
}

func (uc *CatalogUseCase) descriptionNames() (map[string]string, error) {
	descs, err := uc.descRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(descs))
	for _, d := range descs {
		names[d.ID] = d.Name
	}
	return names, nil
}

func (uc *CatalogUseCase) toResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
	}
}
