package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de cola y repos secundarios
// ──────────────────────────────────────────────────────────────────────────────

type fakePendingStore struct {
	records map[string][]localstore.Record
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{records: make(map[string][]localstore.Record)}
}

func (s *fakePendingStore) encolar(t *testing.T, entidad, id string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	s.records[entidad] = append(s.records[entidad], localstore.Record{
		ID: id, Payload: raw, CreatedAt: time.Now(),
	})
}

func (s *fakePendingStore) encolarCrudo(entidad, id, raw string) {
	s.records[entidad] = append(s.records[entidad], localstore.Record{
		ID: id, Payload: json.RawMessage(raw), CreatedAt: time.Now(),
	})
}

func (s *fakePendingStore) Append(entidad string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.records[entidad] = append(s.records[entidad], localstore.Record{
		ID:        fmt.Sprintf("p%d", len(s.records[entidad])+1),
		Payload:   raw,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *fakePendingStore) ListPending(entidad string) ([]localstore.Record, error) {
	return s.records[entidad], nil
}

func (s *fakePendingStore) Remove(entidad, id string) error {
	out := s.records[entidad][:0]
	for _, r := range s.records[entidad] {
		if r.ID != id {
			out = append(out, r)
		}
	}
	s.records[entidad] = out
	return nil
}

type fakeGastoRepo struct {
	gastos   map[string]*entity.Gasto
	failNext error
}

func newFakeGastoRepo() *fakeGastoRepo {
	return &fakeGastoRepo{gastos: make(map[string]*entity.Gasto)}
}

func (r *fakeGastoRepo) Create(g *entity.Gasto) error {
	if r.failNext != nil {
		return r.failNext
	}
	copia := *g
	r.gastos[g.ID] = &copia
	return nil
}

func (r *fakeGastoRepo) GetByID(id string) (*entity.Gasto, error) { return r.gastos[id], nil }
func (r *fakeGastoRepo) ListByRange(from, to time.Time, limit, offset int) ([]*entity.Gasto, error) {
	return nil, nil
}
func (r *fakeGastoRepo) Update(*entity.Gasto) error { return nil }
func (r *fakeGastoRepo) Delete(string) error        { return nil }

type fakeFeedbackRepo struct {
	feedbacks []*entity.Feedback
	failNext  error
}

func (r *fakeFeedbackRepo) Create(fb *entity.Feedback) error {
	if r.failNext != nil {
		return r.failNext
	}
	copia := *fb
	r.feedbacks = append(r.feedbacks, &copia)
	return nil
}

func (r *fakeFeedbackRepo) List(limit, offset int) ([]*entity.Feedback, error) {
	return r.feedbacks, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// SyncAll
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncAll_SubeTodasLasColas(t *testing.T) {
	store := newFakePendingStore()
	ticketRepo := newFakeTicketRepo()
	clienteRepo := newFakeClienteRepo()
	gastoRepo := newFakeGastoRepo()
	feedbackRepo := &fakeFeedbackRepo{}

	store.encolar(t, localstore.EntidadTickets, "r1", entity.Ticket{
		ID: "t1", Numero: "00000001", Servicio: entity.ServicioValet,
		Total: decimal.NewFromInt(5000), Status: entity.StatusPending,
	})
	store.encolar(t, localstore.EntidadGastos, "r2", entity.Gasto{
		ID: "g1", Concepto: "jabón", Categoria: entity.GastoInsumos, Monto: decimal.NewFromInt(2000),
	})
	store.encolar(t, localstore.EntidadClientes, "r3", entity.Cliente{
		ID: "c1", Nombre: "María Pérez", Telefono: "1155550000",
	})
	store.encolar(t, localstore.EntidadFeedback, "r4", entity.Feedback{
		ID: "f1", ClienteNombre: "María Pérez", Rating: 5,
	})

	uc := usecase.NewSyncUseCase(store, ticketRepo, gastoRepo, clienteRepo, feedbackRepo, testLogger())
	result, err := uc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.TicketsSync)
	assert.Equal(t, 1, result.GastosSync)
	assert.Equal(t, 1, result.ClientesSync)
	assert.Equal(t, 1, result.FeedbackSync)

	assert.Empty(t, store.records[localstore.EntidadTickets], "lo subido sale de la cola")
	assert.Empty(t, store.records[localstore.EntidadGastos])
	assert.Len(t, ticketRepo.tickets, 1)
	assert.Len(t, gastoRepo.gastos, 1)
	assert.Len(t, feedbackRepo.feedbacks, 1)
}

func TestSyncAll_FalloEnUnaColaNoFrenaLasDemas(t *testing.T) {
	store := newFakePendingStore()
	ticketRepo := newFakeTicketRepo()
	clienteRepo := newFakeClienteRepo()
	gastoRepo := newFakeGastoRepo()
	gastoRepo.failNext = errors.New("db caída")
	feedbackRepo := &fakeFeedbackRepo{}

	store.encolar(t, localstore.EntidadGastos, "r1", entity.Gasto{ID: "g1", Monto: decimal.NewFromInt(100)})
	store.encolar(t, localstore.EntidadFeedback, "r2", entity.Feedback{ID: "f1", ClienteNombre: "Ana", Rating: 4})

	uc := usecase.NewSyncUseCase(store, ticketRepo, gastoRepo, clienteRepo, feedbackRepo, testLogger())
	result, err := uc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.GastosSync, "la cola que falla reporta cero subidos")
	assert.Equal(t, 1, result.FeedbackSync, "las demás colas siguen procesándose")
	assert.Len(t, store.records[localstore.EntidadGastos], 1,
		"el registro fallido queda en cola para el próximo intento")
}

func TestSyncAll_PayloadCorruptoSeDescarta(t *testing.T) {
	store := newFakePendingStore()
	store.encolarCrudo(localstore.EntidadGastos, "r1", `{esto no es json`)
	store.encolar(t, localstore.EntidadGastos, "r2", entity.Gasto{ID: "g1", Monto: decimal.NewFromInt(300)})

	uc := usecase.NewSyncUseCase(store, newFakeTicketRepo(), newFakeGastoRepo(),
		newFakeClienteRepo(), &fakeFeedbackRepo{}, testLogger())
	result, err := uc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.GastosSync, "el corrupto no cuenta como subido")
	assert.Empty(t, store.records[localstore.EntidadGastos],
		"el corrupto se descarta para no trabar la cola")
}

func TestSyncAll_ClientePendienteActualizaExistente(t *testing.T) {
	store := newFakePendingStore()
	clienteRepo := newFakeClienteRepo()
	require.NoError(t, clienteRepo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000", ValetsCount: 3,
	}))
	store.encolar(t, localstore.EntidadClientes, "r1", entity.Cliente{
		ID: "offline-id", Nombre: "María Pérez", Telefono: "1155550000", ValetsCount: 5,
	})

	uc := usecase.NewSyncUseCase(store, newFakeTicketRepo(), newFakeGastoRepo(),
		clienteRepo, &fakeFeedbackRepo{}, testLogger())
	result, err := uc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ClientesSync)

	cliente, _ := clienteRepo.GetByTelefono("1155550000")
	assert.Equal(t, "c1", cliente.ID, "se conserva el ID del registro ya existente")
	assert.Equal(t, 5, cliente.ValetsCount, "los datos del pendiente pisan al existente")
}
