package request_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-obras/internal/application/audit"
	"github.com/tu-usuario/almacen-obras/internal/application/dto"
	"github.com/tu-usuario/almacen-obras/internal/application/ledger"
	"github.com/tu-usuario/almacen-obras/internal/application/request"
	"github.com/tu-usuario/almacen-obras/internal/domain"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
	"github.com/tu-usuario/almacen-obras/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (r *fakeItemRepo) Create(item *entity.Item) error { r.items[item.ID] = item; return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByName(name string) (*entity.Item, error) { return nil, nil }
func (r *fakeItemRepo) Update(item *entity.Item) error              { return nil }

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *fakeItemRepo) UpdateQuantity(id string, quantity int64) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) List() ([]*entity.Item, error)              { return nil, nil }
func (r *fakeItemRepo) ListLowStock(int64) ([]*entity.Item, error) { return nil, nil }

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByItem(string, int, int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListConsumptionByObra(string) ([]repository.ConsumptionRow, error) {
	return nil, nil
}

type fakeObraRepo struct {
	obras map[string]*entity.Obra
}

func (r *fakeObraRepo) Create(o *entity.Obra) error { r.obras[o.ID] = o; return nil }

func (r *fakeObraRepo) GetByID(id string) (*entity.Obra, error) {
	o, ok := r.obras[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (r *fakeObraRepo) Update(*entity.Obra) error     { return nil }
func (r *fakeObraRepo) List() ([]*entity.Obra, error) { return nil, nil }

type fakeRequestRepo struct {
	requests map[string]*entity.Request
}

func (r *fakeRequestRepo) Create(req *entity.Request) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	return r.GetByID(id)
}

func (r *fakeRequestRepo) Decide(id, status, approverID string, decidedAt time.Time, rejectionReason *string) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending {
		return domain.ErrAlreadyDecided
	}
	req.Status = status
	req.ApproverID = &approverID
	req.DecidedAt = &decidedAt
	req.RejectionReason = rejectionReason
	return nil
}

func (r *fakeRequestRepo) ListPending() ([]repository.RequestRow, error) {
	var out []repository.RequestRow
	for _, req := range r.requests {
		if req.Status == entity.RequestStatusPending {
			out = append(out, repository.RequestRow{
				ID: req.ID, Kind: req.Kind, Status: req.Status, Quantity: req.Quantity,
			})
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByRequester(requesterID string) ([]repository.RequestRow, error) {
	var out []repository.RequestRow
	for _, req := range r.requests {
		if req.RequesterID == requesterID {
			out = append(out, repository.RequestRow{
				ID: req.ID, Kind: req.Kind, Status: req.Status, Quantity: req.Quantity,
				RejectionReason: req.RejectionReason,
			})
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta la función sobre los fakes y, si falla, restaura el
// estado previo: mismo efecto observable que el rollback real.
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	itemRepo    *fakeItemRepo
	requestRepo *fakeRequestRepo
}

func (r *fakeTxRunner) snapshot() (map[string]int64, map[string]entity.Request, int) {
	qtys := make(map[string]int64, len(r.itemRepo.items))
	for id, it := range r.itemRepo.items {
		qtys[id] = it.Quantity
	}
	reqs := make(map[string]entity.Request, len(r.requestRepo.requests))
	for id, rq := range r.requestRepo.requests {
		reqs[id] = *rq
	}
	return qtys, reqs, len(r.movRepo.movements)
}

func (r *fakeTxRunner) restore(qtys map[string]int64, reqs map[string]entity.Request, movCount int) {
	for id, qty := range qtys {
		r.itemRepo.items[id].Quantity = qty
	}
	for id, rq := range reqs {
		cp := rq
		r.requestRepo.requests[id] = &cp
	}
	r.movRepo.movements = r.movRepo.movements[:movCount]
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	qtys, reqs, movCount := r.snapshot()
	if err := fn(r.movRepo, r.itemRepo); err != nil {
		r.restore(qtys, reqs, movCount)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunApproval(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
) error) error {
	qtys, reqs, movCount := r.snapshot()
	if err := fn(r.movRepo, r.itemRepo, r.requestRepo); err != nil {
		r.restore(qtys, reqs, movCount)
		return err
	}
	return nil
}

type workflowFixture struct {
	uc          *request.WorkflowUseCase
	itemRepo    *fakeItemRepo
	movRepo     *fakeMovementRepo
	requestRepo *fakeRequestRepo
	obraRepo    *fakeObraRepo
}

func newFixture(items ...*entity.Item) *workflowFixture {
	itemRepo := &fakeItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		itemRepo.items[it.ID] = it
	}
	movRepo := &fakeMovementRepo{}
	requestRepo := &fakeRequestRepo{requests: make(map[string]*entity.Request)}
	obraRepo := &fakeObraRepo{obras: map[string]*entity.Obra{
		"obra-1": {ID: "obra-1", Name: "Edificio Central"},
	}}
	runner := &fakeTxRunner{movRepo: movRepo, itemRepo: itemRepo, requestRepo: requestRepo}
	ledgerUC := ledger.NewApplyMovementUseCase(runner, movRepo, itemRepo, audit.Noop{})
	uc := request.NewWorkflowUseCase(runner, requestRepo, itemRepo, obraRepo, ledgerUC, audit.Noop{})
	return &workflowFixture{uc: uc, itemRepo: itemRepo, movRepo: movRepo, requestRepo: requestRepo, obraRepo: obraRepo}
}

func arena(qty int64) *entity.Item {
	return &entity.Item{ID: "item-1", Name: "Arena gruesa m3", Quantity: qty}
}

func submitWithdrawal(t *testing.T, f *workflowFixture, qty int64, obraID *string) string {
	t.Helper()
	resp, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:          entity.RequestKindWithdrawal,
		ItemID:        "item-1",
		Quantity:      qty,
		Justification: "avance de obra",
		ObraID:        obraID,
	})
	require.NoError(t, err)
	return resp.RequestID
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

// El pedido se crea pendiente aunque la cantidad supere el stock actual: la
// disponibilidad se valida recién al aprobar, porque el saldo puede cambiar
// mientras el pedido espera.
func TestSubmit_SinVerificarStock(t *testing.T) {
	f := newFixture(arena(10))

	id := submitWithdrawal(t, f, 500, nil)

	req, _ := f.requestRepo.GetByID(id)
	require.NotNil(t, req)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Equal(t, "solicitante-1", req.RequesterID)
	assert.Empty(t, f.movRepo.movements, "solicitar no mueve stock")
}

func TestSubmit_CompraConObra_Invalido(t *testing.T) {
	f := newFixture(arena(10))

	obraID := "obra-1"
	_, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:     entity.RequestKindPurchase,
		ItemID:   "item-1",
		Quantity: 5,
		ObraID:   &obraID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un pedido de compra no lleva obra de destino")
}

func TestSubmit_CantidadInvalida(t *testing.T) {
	f := newFixture(arena(10))

	_, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:     entity.RequestKindWithdrawal,
		ItemID:   "item-1",
		Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSubmit_ItemInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:     entity.RequestKindWithdrawal,
		ItemID:   "no-existe",
		Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_ObraInexistente(t *testing.T) {
	f := newFixture(arena(10))

	obraID := "obra-fantasma"
	_, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:     entity.RequestKindWithdrawal,
		ItemID:   "item-1",
		Quantity: 5,
		ObraID:   &obraID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

// Aprobar un retiro descuenta el stock y deja el movimiento atribuido al
// solicitante original, enlazado al pedido y a la obra.
func TestApprove_RetiroDescuentaStock(t *testing.T) {
	f := newFixture(arena(100))
	obraID := "obra-1"
	id := submitWithdrawal(t, f, 40, &obraID)

	err := f.uc.Approve(context.Background(), id, "aprobador-1")
	require.NoError(t, err)

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, int64(60), item.Quantity)

	req, _ := f.requestRepo.GetByID(id)
	assert.Equal(t, entity.RequestStatusApproved, req.Status)
	require.NotNil(t, req.ApproverID)
	assert.Equal(t, "aprobador-1", *req.ApproverID)
	assert.NotNil(t, req.DecidedAt)

	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeConsumption, mov.Type)
	assert.Equal(t, int64(40), mov.Quantity)
	assert.Equal(t, "solicitante-1", mov.ActorID,
		"el movimiento se atribuye al solicitante, no al aprobador")
	require.NotNil(t, mov.RequestID)
	assert.Equal(t, id, *mov.RequestID)
	require.NotNil(t, mov.ObraID)
	assert.Equal(t, obraID, *mov.ObraID)
}

// Aprobar una compra ingresa stock (entrada, no salida).
func TestApprove_CompraIngresaStock(t *testing.T) {
	f := newFixture(arena(10))

	resp, err := f.uc.Submit(context.Background(), "solicitante-1", dto.SubmitRequestRequest{
		Kind:          entity.RequestKindPurchase,
		ItemID:        "item-1",
		Quantity:      200,
		Justification: "reposición",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Approve(context.Background(), resp.RequestID, "aprobador-1"))

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, int64(210), item.Quantity)

	require.Len(t, f.movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeReceipt, f.movRepo.movements[0].Type)
}

// Si el stock no alcanza al momento de aprobar, el error se propaga y el
// pedido sigue pendiente: no se auto-rechaza ni queda a medio decidir.
func TestApprove_StockInsuficiente_PedidoSiguePendiente(t *testing.T) {
	f := newFixture(arena(30))
	id := submitWithdrawal(t, f, 50, nil)

	err := f.uc.Approve(context.Background(), id, "aprobador-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(30), insufficientErr.Available)
	assert.Equal(t, int64(50), insufficientErr.Requested)

	req, _ := f.requestRepo.GetByID(id)
	assert.Equal(t, entity.RequestStatusPending, req.Status,
		"el pedido debe seguir pendiente tras el fallo")
	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, int64(30), item.Quantity)
	assert.Empty(t, f.movRepo.movements)
}

// Un pedido se decide exactamente una vez.
func TestApprove_YaDecidido(t *testing.T) {
	f := newFixture(arena(100))
	id := submitWithdrawal(t, f, 10, nil)

	require.NoError(t, f.uc.Approve(context.Background(), id, "aprobador-1"))

	err := f.uc.Approve(context.Background(), id, "aprobador-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

	var decidedErr *domain.AlreadyDecidedError
	require.ErrorAs(t, err, &decidedErr)
	assert.Equal(t, entity.RequestStatusApproved, decidedErr.Status)

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, int64(90), item.Quantity, "la segunda aprobación no debe mover stock")
	assert.Len(t, f.movRepo.movements, 1)
}

func TestApprove_PedidoInexistente(t *testing.T) {
	f := newFixture(arena(100))

	err := f.uc.Approve(context.Background(), "no-existe", "aprobador-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_ConMotivo(t *testing.T) {
	f := newFixture(arena(100))
	id := submitWithdrawal(t, f, 40, nil)

	err := f.uc.Reject(context.Background(), id, "aprobador-1", "sin presupuesto este mes")
	require.NoError(t, err)

	req, _ := f.requestRepo.GetByID(id)
	assert.Equal(t, entity.RequestStatusRejected, req.Status)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, "sin presupuesto este mes", *req.RejectionReason)

	item, _ := f.itemRepo.GetByID("item-1")
	assert.Equal(t, int64(100), item.Quantity, "rechazar no toca el stock")
	assert.Empty(t, f.movRepo.movements)
}

func TestReject_SinMotivo_Invalido(t *testing.T) {
	f := newFixture(arena(100))
	id := submitWithdrawal(t, f, 40, nil)

	err := f.uc.Reject(context.Background(), id, "aprobador-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo de rechazo es obligatorio")

	req, _ := f.requestRepo.GetByID(id)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
}

func TestReject_DespuesDeAprobar_YaDecidido(t *testing.T) {
	f := newFixture(arena(100))
	id := submitWithdrawal(t, f, 10, nil)

	require.NoError(t, f.uc.Approve(context.Background(), id, "aprobador-1"))

	err := f.uc.Reject(context.Background(), id, "aprobador-2", "cambio de planes")
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

	req, _ := f.requestRepo.GetByID(id)
	assert.Equal(t, entity.RequestStatusApproved, req.Status,
		"la decisión original no debe cambiar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListPending_SoloPendientes(t *testing.T) {
	f := newFixture(arena(100))
	pendingID := submitWithdrawal(t, f, 10, nil)
	approvedID := submitWithdrawal(t, f, 20, nil)
	require.NoError(t, f.uc.Approve(context.Background(), approvedID, "aprobador-1"))

	rows, err := f.uc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pendingID, rows[0].ID)
}

func TestByRequester_IncluyeMotivoDeRechazo(t *testing.T) {
	f := newFixture(arena(100))
	id := submitWithdrawal(t, f, 10, nil)
	require.NoError(t, f.uc.Reject(context.Background(), id, "aprobador-1", "fuera de alcance"))

	rows, err := f.uc.ByRequester(context.Background(), "solicitante-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fuera de alcance", rows[0].RejectionReason)
}
