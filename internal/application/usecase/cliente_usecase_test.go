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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildClienteUC() (*usecase.ClienteUseCase, *fakeClienteRepo) {
	clienteRepo := newFakeClienteRepo()
	uc := usecase.NewClienteUseCase(clienteRepo, &fakeTxRunner{
		ticketRepo:  newFakeTicketRepo(),
		clienteRepo: clienteRepo,
	}, nil, testLogger())
	return uc, clienteRepo
}

func TestLoyalty_ResumenConProximoPremio(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000",
		ValetsCount: 7, LoyaltyPoints: 70, FreeValets: 0,
	}))

	resumen, err := uc.Loyalty(context.Background(), "11-5555-0000")

	require.NoError(t, err)
	assert.Equal(t, 7, resumen.ValetsCount)
	assert.Equal(t, 2, resumen.ParaProximoGratis, "con 7 valets faltan 2 para el premio")
}

func TestLoyalty_ClienteInexistente(t *testing.T) {
	uc, _ := buildClienteUC()
	_, err := uc.Loyalty(context.Background(), "1100000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedeemFreeValet_DescuentaYRegistra(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000", FreeValets: 2,
	}))

	resumen, err := uc.RedeemFreeValet(context.Background(), "1155550000")

	require.NoError(t, err)
	assert.Equal(t, 1, resumen.FreeValets)
	assert.Equal(t, 1, resumen.ValetsRedeemed)

	persistido, _ := repo.GetByTelefono("1155550000")
	assert.Equal(t, 1, persistido.FreeValets, "el canje queda persistido")
}

func TestRedeemFreeValet_SinSaldo(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000",
	}))

	_, err := uc.RedeemFreeValet(context.Background(), "1155550000")

	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	persistido, _ := repo.GetByTelefono("1155550000")
	assert.Zero(t, persistido.ValetsRedeemed, "un canje fallido no persiste cambios")
}

func TestRedeemPoints_CanjeaCienPuntos(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000", LoyaltyPoints: 130,
	}))

	resumen, err := uc.RedeemPoints(context.Background(), "1155550000")

	require.NoError(t, err)
	assert.Equal(t, 30, resumen.LoyaltyPoints)
	assert.Equal(t, 1, resumen.FreeValets)
}

func TestRedeemPoints_Insuficientes(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000", LoyaltyPoints: 99,
	}))

	_, err := uc.RedeemPoints(context.Background(), "1155550000")
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
}

func TestUpdate_EditaNombreYNotas(t *testing.T) {
	uc, repo := buildClienteUC()
	require.NoError(t, repo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000",
	}))

	out, err := uc.Update(context.Background(), "1155550000", dto.UpdateClienteRequest{
		Nombre: "María Pérez",
		Notas:  "retira los sábados",
	})

	require.NoError(t, err)
	assert.Equal(t, "María Pérez", out.Nombre)
	assert.Equal(t, "retira los sábados", out.Notas)
}

func TestUpdate_SinConexionQuedaEnCola(t *testing.T) {
	clienteRepo := newFakeClienteRepo()
	require.NoError(t, clienteRepo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María", Telefono: "1155550000",
	}))
	clienteRepo.failUpdate = errors.New("db caída")
	pending := newFakePendingStore()
	uc := usecase.NewClienteUseCase(clienteRepo, &fakeTxRunner{
		ticketRepo:  newFakeTicketRepo(),
		clienteRepo: clienteRepo,
	}, pending, testLogger())

	out, err := uc.Update(context.Background(), "1155550000", dto.UpdateClienteRequest{
		Nombre: "María Pérez",
	})

	require.NoError(t, err, "el corte de conexión no pierde la edición")
	assert.Equal(t, "María Pérez", out.Nombre)
	require.Len(t, pending.records[localstore.EntidadClientes], 1)

	// Con la DB de vuelta, SyncAll sube la edición conservando el ID existente.
	clienteRepo.failUpdate = nil
	syncUC := usecase.NewSyncUseCase(pending, newFakeTicketRepo(), newFakeGastoRepo(),
		clienteRepo, &fakeFeedbackRepo{}, testLogger())
	result, err := syncUC.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ClientesSync)
	persistido, _ := clienteRepo.GetByTelefono("1155550000")
	assert.Equal(t, "María Pérez", persistido.Nombre)
	assert.Equal(t, "c1", persistido.ID)
}
