package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Alta de gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateGasto_Valido(t *testing.T) {
	gastoRepo := newFakeGastoRepo()
	uc := usecase.NewGastoUseCase(gastoRepo, nil, testLogger())

	out, err := uc.Create(context.Background(), dto.CreateGastoRequest{
		Concepto:  "jabón líquido",
		Categoria: entity.GastoInsumos,
		Monto:     decimal.NewFromInt(3500),
	})

	require.NoError(t, err)
	assert.Equal(t, "jabón líquido", out.Concepto)
	assert.Len(t, gastoRepo.gastos, 1)
}

func TestCreateGasto_InvalidoNoSeEncola(t *testing.T) {
	gastoRepo := newFakeGastoRepo()
	pending := newFakePendingStore()
	uc := usecase.NewGastoUseCase(gastoRepo, pending, testLogger())

	_, err := uc.Create(context.Background(), dto.CreateGastoRequest{
		Concepto: "sin categoría", Monto: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, pending.records[localstore.EntidadGastos],
		"un gasto inválido no va a la cola de pendientes")
}

// ──────────────────────────────────────────────────────────────────────────────
// Captura offline
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateGasto_SinConexionQuedaEnCola(t *testing.T) {
	gastoRepo := newFakeGastoRepo()
	gastoRepo.failNext = errors.New("db caída")
	pending := newFakePendingStore()
	uc := usecase.NewGastoUseCase(gastoRepo, pending, testLogger())

	out, err := uc.Create(context.Background(), dto.CreateGastoRequest{
		Concepto:  "repuesto de secadora",
		Categoria: entity.GastoMantenimiento,
		Monto:     decimal.NewFromInt(42000),
	})

	require.NoError(t, err, "el corte de conexión no pierde el gasto")
	assert.NotEmpty(t, out.ID)
	assert.Empty(t, gastoRepo.gastos, "nada llegó a la DB")
	require.Len(t, pending.records[localstore.EntidadGastos], 1,
		"el gasto queda encolado para sincronizar")

	// Con la DB de vuelta, SyncAll sube lo capturado.
	gastoRepo.failNext = nil
	syncUC := usecase.NewSyncUseCase(pending, newFakeTicketRepo(), gastoRepo,
		newFakeClienteRepo(), &fakeFeedbackRepo{}, testLogger())
	result, err := syncUC.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.GastosSync)
	assert.Len(t, gastoRepo.gastos, 1)
	assert.Empty(t, pending.records[localstore.EntidadGastos])
}

func TestCreateGasto_SinColaElFalloSePropaga(t *testing.T) {
	gastoRepo := newFakeGastoRepo()
	gastoRepo.failNext = errors.New("db caída")
	uc := usecase.NewGastoUseCase(gastoRepo, nil, testLogger())

	_, err := uc.Create(context.Background(), dto.CreateGastoRequest{
		Concepto:  "jabón",
		Categoria: entity.GastoInsumos,
		Monto:     decimal.NewFromInt(100),
	})
	assert.Error(t, err, "sin almacén local el fallo de DB llega al caller")
}
