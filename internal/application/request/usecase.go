package request

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

// WorkflowUseCase máquina de estados de pedidos: PENDING → APPROVED o
// PENDING → REJECTED, sin más transiciones. La aprobación mueve stock por el
// mismo camino que un movimiento directo, dentro de la misma transacción que
// el cambio de estado.
type WorkflowUseCase struct {
	txRunner    TxRunner
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	obraRepo    repository.ObraRepository
	ledger      *ledger.ApplyMovementUseCase
	recorder    audit.Recorder
}

// NewWorkflowUseCase construye el workflow de pedidos.
func NewWorkflowUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	obraRepo repository.ObraRepository,
	ledger *ledger.ApplyMovementUseCase,
	recorder audit.Recorder,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		obraRepo:    obraRepo,
		ledger:      ledger,
		recorder:    recorder,
	}
}

// Submit crea un pedido pendiente. No se verifica stock aquí: el saldo puede
// cambiar mientras el pedido espera, así que la disponibilidad se valida
// recién al aprobar.
func (uc *WorkflowUseCase) Submit(ctx context.Context, requesterID string, in dto.SubmitRequestRequest) (*dto.SubmitRequestResponse, error) {
	if requesterID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.RequestKindPurchase && in.Kind != entity.RequestKindWithdrawal {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Kind == entity.RequestKindPurchase && in.ObraID != nil {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.ObraID != nil {
		obra, err := uc.obraRepo.GetByID(*in.ObraID)
		if err != nil {
			return nil, err
		}
		if obra == nil {
			return nil, domain.ErrNotFound
		}
	}

	req := &entity.Request{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		Status:        entity.RequestStatusPending,
		RequesterID:   requesterID,
		Justification: in.Justification,
		ObraID:        in.ObraID,
		CreatedAt:     time.Now(),
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, requesterID, audit.ActionCreateRequest,
		fmt.Sprintf("pedido=%s tipo=%s item=%s cantidad=%d", req.ID, req.Kind, req.ItemID, req.Quantity))
	return &dto.SubmitRequestResponse{RequestID: req.ID}, nil
}

// Approve decide un pedido pendiente como aprobado. El movimiento de stock y
// el cambio de estado se escriben en la misma transacción: un pedido nunca
// queda aprobado sin su movimiento, ni el movimiento sin la aprobación. Si el
// stock no alcanza, el error se propaga y el pedido sigue pendiente (no se
// auto-rechaza).
func (uc *WorkflowUseCase) Approve(ctx context.Context, requestID, approverID string) error {
	if requestID == "" || approverID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.RunApproval(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Decided() {
			return &domain.AlreadyDecidedError{RequestID: req.ID, Status: req.Status}
		}

		// Un pedido de compra aprobado representa stock que llega, no que sale.
		movType := entity.MovementTypeReceipt
		if req.Kind == entity.RequestKindWithdrawal {
			movType = entity.MovementTypeConsumption
		}
		note := fmt.Sprintf("Pedido aprobado #%s", req.ID)

		// El movimiento se atribuye al solicitante original: el material se
		// mueve para quien lo pidió. El aprobador queda solo en los campos de
		// decisión del pedido.
		_, err = uc.ledger.ApplyInTx(movRepo, itemRepo, ledger.MovementInput{
			ItemID:    req.ItemID,
			Type:      movType,
			Quantity:  req.Quantity,
			ActorID:   req.RequesterID,
			Note:      note,
			RequestID: &req.ID,
			ObraID:    req.ObraID,
		}, now)
		if err != nil {
			return err
		}
		return requestRepo.Decide(req.ID, entity.RequestStatusApproved, approverID, now, nil)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(ctx, approverID, audit.ActionApproveRequest,
		fmt.Sprintf("pedido=%s", requestID))
	return nil
}

// Reject decide un pedido pendiente como rechazado. Exige un motivo no vacío
// y no toca el stock.
func (uc *WorkflowUseCase) Reject(ctx context.Context, requestID, approverID, reason string) error {
	if requestID == "" || approverID == "" {
		return domain.ErrInvalidInput
	}
	if reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	err := uc.txRunner.RunApproval(ctx, func(
		_ repository.MovementRepository,
		_ repository.ItemRepository,
		requestRepo repository.RequestRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Decided() {
			return &domain.AlreadyDecidedError{RequestID: req.ID, Status: req.Status}
		}
		return requestRepo.Decide(req.ID, entity.RequestStatusRejected, approverID, now, &reason)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(ctx, approverID, audit.ActionRejectRequest,
		fmt.Sprintf("pedido=%s motivo=%s", requestID, reason))
	return nil
}

// ListPending pedidos pendientes, más antiguos primero: el orden en que deben
// atenderse. Un pedido decidido jamás aparece aquí.
func (uc *WorkflowUseCase) ListPending(ctx context.Context) ([]dto.RequestResponse, error) {
	rows, err := uc.requestRepo.ListPending()
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

// ByRequester historial de pedidos de un solicitante, más recientes primero,
// con el motivo de rechazo cuando exista.
func (uc *WorkflowUseCase) ByRequester(ctx context.Context, requesterID string) ([]dto.RequestResponse, error) {
	if requesterID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.requestRepo.ListByRequester(requesterID)
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func toResponses(rows []repository.RequestRow) []dto.RequestResponse {
	out := make([]dto.RequestResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.RequestResponse{
			ID:            r.ID,
			Kind:          r.Kind,
			Status:        r.Status,
			Quantity:      r.Quantity,
			Justification: r.Justification,
			ItemName:      r.ItemName,
			RequesterName: r.RequesterName,
			CreatedAt:     r.CreatedAt,
			DecidedAt:     r.DecidedAt,
		}
		if r.RejectionReason != nil {
			resp.RejectionReason = *r.RejectionReason
		}
		if r.ObraName != nil {
			resp.ObraName = *r.ObraName
		}
		out = append(out, resp)
	}
	return out
}
