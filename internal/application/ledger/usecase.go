package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// ApplyMovementUseCase es el único punto por el que cambia la cantidad de un
// ítem. Todo camino que mueve stock (movimiento directo, aprobación de pedido,
// saldo inicial al crear un ítem) pasa por aquí. Cualquier otro código que
// toque items.quantity es un defecto.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	itemRepo repository.ItemRepository
	recorder audit.Recorder
}

// NewApplyMovementUseCase construye el motor de movimientos. movRepo e itemRepo
// se usan solo para lecturas fuera de transacción; las escrituras pasan por txRunner.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	recorder audit.Recorder,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, movRepo: movRepo, itemRepo: itemRepo, recorder: recorder}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es la magnitud positiva; el signo lo decide Type.
type MovementInput struct {
	ItemID    string
	Type      string
	Quantity  int64
	ActorID   string
	Note      string
	RequestID *string
	ObraID    *string
}

// Validate verifica tipo y magnitud antes de abrir la transacción.
func (in MovementInput) Validate() error {
	if in.ItemID == "" || in.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Apply registra un movimiento en una transacción propia: bloquea la fila del
// ítem (SELECT FOR UPDATE), calcula el nuevo saldo, lo escribe y agrega el
// registro al libro. Devuelve el nuevo saldo; el caller lo usa solo para
// mostrar, nunca lo recalcula por su cuenta.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var newQuantity int64
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		qty, err := uc.ApplyInTx(movRepo, itemRepo, input, time.Now())
		if err != nil {
			return err
		}
		newQuantity = qty
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Auditoría fuera de la transacción: un fallo aquí no revierte el movimiento.
	uc.recorder.Record(ctx, input.ActorID, audit.ActionMovement,
		fmt.Sprintf("tipo=%s item=%s cantidad=%d saldo=%d", input.Type, input.ItemID, input.Quantity, newQuantity))
	return newQuantity, nil
}

// ItemHistory lista los movimientos de un ítem, más recientes primero.
func (uc *ApplyMovementUseCase) ItemHistory(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// ApplyInTx ejecuta la aritmética del movimiento con los repositorios que le
// pase el caller (misma transacción del caller). Lo usa Apply y también la
// aprobación de pedidos, para que ambas rutas compartan un único camino de
// escritura del saldo.
func (uc *ApplyMovementUseCase) ApplyInTx(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	input MovementInput,
	now time.Time,
) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	// Bloquea la fila del ítem para evitar que dos movimientos concurrentes
	// lean el mismo saldo y escriban valores en conflicto.
	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}

	var newQuantity int64
	switch input.Type {
	case entity.MovementTypeConsumption:
		if item.Quantity < input.Quantity {
			return 0, &domain.InsufficientStockError{
				ItemName:  item.Name,
				Available: item.Quantity,
				Requested: input.Quantity,
			}
		}
		newQuantity = item.Quantity - input.Quantity
	default: // RECEIPT y PURCHASE suman incondicionalmente
		newQuantity = item.Quantity + input.Quantity
	}

	if err := itemRepo.UpdateQuantity(item.ID, newQuantity); err != nil {
		return 0, err
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ItemID:    input.ItemID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		ActorID:   input.ActorID,
		Note:      input.Note,
		RequestID: input.RequestID,
		ObraID:    input.ObraID,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return 0, err
	}
	return newQuantity, nil
}
