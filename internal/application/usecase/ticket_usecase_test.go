package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/application/usecase"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeTicketRepo struct {
	tickets   map[string]*entity.Ticket
	items     map[string][]entity.TicketItem
	seq       int
	listCalls int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*entity.Ticket),
		items:   make(map[string][]entity.TicketItem),
	}
}

func (r *fakeTicketRepo) Create(t *entity.Ticket) error {
	if _, ok := r.tickets[t.ID]; ok {
		return domain.ErrDuplicate
	}
	copia := *t
	r.tickets[t.ID] = &copia
	return nil
}

func (r *fakeTicketRepo) CreateItem(it *entity.TicketItem) error {
	r.items[it.TicketID] = append(r.items[it.TicketID], *it)
	return nil
}

func (r *fakeTicketRepo) GetByID(id string) (*entity.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (r *fakeTicketRepo) ListItems(ticketID string) ([]entity.TicketItem, error) {
	return r.items[ticketID], nil
}

func (r *fakeTicketRepo) List(filter repository.TicketFilter) ([]*entity.Ticket, error) {
	r.listCalls++
	var out []*entity.Ticket
	for _, t := range r.tickets {
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		copia := *t
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakeTicketRepo) Update(t *entity.Ticket) error {
	if _, ok := r.tickets[t.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *t
	r.tickets[t.ID] = &copia
	return nil
}

func (r *fakeTicketRepo) NextNumero() (string, error) {
	r.seq++
	return fmt.Sprintf("%08d", r.seq), nil
}

type fakeClienteRepo struct {
	porTelefono map[string]*entity.Cliente
	failUpdate  error
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{porTelefono: make(map[string]*entity.Cliente)}
}

func (r *fakeClienteRepo) Create(c *entity.Cliente) error {
	if _, ok := r.porTelefono[c.Telefono]; ok {
		return domain.ErrDuplicate
	}
	copia := *c
	r.porTelefono[c.Telefono] = &copia
	return nil
}

func (r *fakeClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	for _, c := range r.porTelefono {
		if c.ID == id {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeClienteRepo) GetByTelefono(tel string) (*entity.Cliente, error) {
	c, ok := r.porTelefono[tel]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *fakeClienteRepo) Search(q string, limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}

func (r *fakeClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range r.porTelefono {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakeClienteRepo) Update(c *entity.Cliente) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	copia := *c
	r.porTelefono[c.Telefono] = &copia
	return nil
}

type fakeTintoreriaRepo struct {
	activos []*entity.TintoreriaItem
}

func (r *fakeTintoreriaRepo) Create(*entity.TintoreriaItem) error { return nil }
func (r *fakeTintoreriaRepo) GetByID(string) (*entity.TintoreriaItem, error) {
	return nil, nil
}
func (r *fakeTintoreriaRepo) Update(*entity.TintoreriaItem) error { return nil }
func (r *fakeTintoreriaRepo) ListActivos() ([]*entity.TintoreriaItem, error) {
	return r.activos, nil
}

// fakeTxRunner ejecuta fn directo sobre los fakes, sin transacción real.
type fakeTxRunner struct {
	ticketRepo  repository.TicketRepository
	clienteRepo repository.ClienteRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	ticketRepo repository.TicketRepository,
	clienteRepo repository.ClienteRepository,
) error) error {
	return fn(r.ticketRepo, r.clienteRepo)
}

type fakePDFGen struct{}

func (fakePDFGen) GenerateTicketPDF(ctx context.Context, t *entity.Ticket) ([]byte, error) {
	return []byte("%PDF-" + t.Numero), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *usecase.TicketUseCase
	ticketRepo  *fakeTicketRepo
	clienteRepo *fakeClienteRepo
}

func buildFixture() *fixture {
	ticketRepo := newFakeTicketRepo()
	clienteRepo := newFakeClienteRepo()
	tintoreriaRepo := &fakeTintoreriaRepo{activos: []*entity.TintoreriaItem{
		{ID: "camisa", Nombre: "Camisa", Precio: decimal.NewFromInt(1500), Activo: true},
		{ID: "traje", Nombre: "Traje", Precio: decimal.NewFromInt(8000), Activo: true},
	}}
	uc := usecase.NewTicketUseCase(
		&fakeTxRunner{ticketRepo: ticketRepo, clienteRepo: clienteRepo},
		ticketRepo, clienteRepo, tintoreriaRepo,
		fakePDFGen{},
		decimal.NewFromInt(5000),
		time.Minute,
	)
	return &fixture{uc: uc, ticketRepo: ticketRepo, clienteRepo: clienteRepo}
}

func valetRequest(qty int, paid bool) dto.CreateTicketRequest {
	return dto.CreateTicketRequest{
		ClienteNombre:   "María Pérez",
		ClienteTelefono: "11-5555-0000",
		Servicio:        entity.ServicioValet,
		ValetQuantity:   qty,
		IsPaid:          paid,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de tickets
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValetCalculaTotalEnServidor(t *testing.T) {
	f := buildFixture()

	out, err := f.uc.Create(context.Background(), valetRequest(3, true))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15000).Equal(out.Total),
		"3 valets a 5000 = 15000, se obtuvo %s", out.Total)
	assert.Equal(t, "00000001", out.Numero, "el primer ticket toma el primer consecutivo")
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "1155550000", out.ClienteTelefono, "el teléfono se normaliza a dígitos")
}

func TestCreate_ValetPagadoAcumulaFidelidad(t *testing.T) {
	f := buildFixture()

	_, err := f.uc.Create(context.Background(), valetRequest(3, true))
	require.NoError(t, err)

	cliente, err := f.clienteRepo.GetByTelefono("1155550000")
	require.NoError(t, err)
	require.NotNil(t, cliente, "el alta crea el cliente si no existía")
	assert.Equal(t, 3, cliente.ValetsCount, "cada unidad de valet cuenta")
	assert.Equal(t, 30, cliente.LoyaltyPoints, "10 puntos por valet pagado")
}

func TestCreate_ValetNoPagadoNoAcumula(t *testing.T) {
	f := buildFixture()

	_, err := f.uc.Create(context.Background(), valetRequest(2, false))
	require.NoError(t, err)

	cliente, _ := f.clienteRepo.GetByTelefono("1155550000")
	require.NotNil(t, cliente)
	assert.Zero(t, cliente.ValetsCount, "sin cobro registrado no hay acumulación")
	assert.Zero(t, cliente.LoyaltyPoints)
}

func TestCreate_NovenoValetOtorgaGratis(t *testing.T) {
	f := buildFixture()
	require.NoError(t, f.clienteRepo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María Pérez", Telefono: "1155550000", ValetsCount: 8, LoyaltyPoints: 80,
	}))

	_, err := f.uc.Create(context.Background(), valetRequest(1, true))
	require.NoError(t, err)

	cliente, _ := f.clienteRepo.GetByTelefono("1155550000")
	assert.Equal(t, 9, cliente.ValetsCount)
	assert.Equal(t, 1, cliente.FreeValets, "el noveno valet pagado otorga el premio")
}

func TestCreate_ValetGratisConsumeSaldoYCotizaCero(t *testing.T) {
	f := buildFixture()
	require.NoError(t, f.clienteRepo.Create(&entity.Cliente{
		ID: "c1", Nombre: "María Pérez", Telefono: "1155550000", FreeValets: 1,
	}))

	in := valetRequest(1, false)
	in.UseFreeValet = true
	out, err := f.uc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, out.Total.IsZero(), "el valet gratis no se cobra")
	assert.True(t, out.EsValetGratis)

	cliente, _ := f.clienteRepo.GetByTelefono("1155550000")
	assert.Zero(t, cliente.FreeValets, "el canje consume el saldo")
	assert.Equal(t, 1, cliente.ValetsRedeemed)
	assert.Zero(t, cliente.LoyaltyPoints, "el valet gratis no suma puntos")
}

func TestCreate_ValetGratisSinSaldoFalla(t *testing.T) {
	f := buildFixture()

	in := valetRequest(1, false)
	in.UseFreeValet = true
	_, err := f.uc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, f.ticketRepo.tickets, "no debe quedar ticket persistido")
}

func TestCreate_TintoreriaCongelaPreciosDelCatalogo(t *testing.T) {
	f := buildFixture()

	out, err := f.uc.Create(context.Background(), dto.CreateTicketRequest{
		ClienteNombre:   "Juan Gómez",
		ClienteTelefono: "1144440000",
		Servicio:        entity.ServicioTintoreria,
		Items: []dto.TicketItemRequest{
			{ItemID: "camisa", Quantity: 2},
			{ItemID: "traje", Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(11000).Equal(out.Total),
		"2 camisas + 1 traje = 11000, se obtuvo %s", out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Camisa", out.Items[0].Nombre, "el nombre queda congelado en la línea")
	assert.True(t, decimal.NewFromInt(1500).Equal(out.Items[0].UnitPrice))

	cliente, _ := f.clienteRepo.GetByTelefono("1144440000")
	require.NotNil(t, cliente)
	assert.Zero(t, cliente.ValetsCount, "la tintorería no acumula fidelidad")
}

func TestCreate_Validaciones(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()

	casos := []dto.CreateTicketRequest{
		{}, // todo vacío
		{ClienteNombre: "Ana", ClienteTelefono: "sin-digitos", Servicio: entity.ServicioValet, ValetQuantity: 1},
		{ClienteNombre: "Ana", ClienteTelefono: "1133330000", Servicio: "planchado"},
		{ClienteNombre: "Ana", ClienteTelefono: "1133330000", Servicio: entity.ServicioValet, ValetQuantity: 0},
		{ClienteNombre: "Ana", ClienteTelefono: "1133330000", Servicio: entity.ServicioTintoreria},
		{ClienteNombre: "Ana", ClienteTelefono: "1133330000", Servicio: entity.ServicioValet,
			ValetQuantity: 1, PaymentMethod: "cheque"},
	}
	for i, in := range casos {
		_, err := f.uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d debe rechazarse", i)
	}
	assert.Empty(t, f.ticketRepo.tickets, "ningún caso inválido debe persistir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida vía caso de uso
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_EntregaCompleta(t *testing.T) {
	f := buildFixture()
	out, err := f.uc.Create(context.Background(), valetRequest(1, false))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.uc.Transition(ctx, out.ID, dto.TransitionRequest{Status: "processing"})
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, out.ID, dto.TransitionRequest{Status: "ready"})
	require.NoError(t, err)
	entregado, err := f.uc.Transition(ctx, out.ID, dto.TransitionRequest{Status: "delivered"})
	require.NoError(t, err)

	assert.Equal(t, "delivered", entregado.Status)
	assert.True(t, entregado.IsPaid, "la entrega confirma el cobro")
	assert.NotNil(t, entregado.DeliveredAt)

	// Una segunda entrega debe rebotar: desde delivered no sale ninguna transición.
	_, err = f.uc.Transition(ctx, out.ID, dto.TransitionRequest{Status: "delivered"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_TicketInexistente(t *testing.T) {
	f := buildFixture()
	_, err := f.uc.Transition(context.Background(), "no-existe", dto.TransitionRequest{Status: "processing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPago_RegistraMetodoYCobro(t *testing.T) {
	f := buildFixture()
	out, err := f.uc.Create(context.Background(), valetRequest(1, false))
	require.NoError(t, err)

	metodo := entity.PagoMercadoPago
	pagado := true
	actualizado, err := f.uc.Pago(context.Background(), out.ID, dto.PagoRequest{
		PaymentMethod: &metodo,
		IsPaid:        &pagado,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PagoMercadoPago, actualizado.PaymentMethod)
	assert.True(t, actualizado.IsPaid)
}

func TestPago_SinCamposFalla(t *testing.T) {
	f := buildFixture()
	out, err := f.uc.Create(context.Background(), valetRequest(1, false))
	require.NoError(t, err)

	_, err = f.uc.Pago(context.Background(), out.ID, dto.PagoRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché de listados
// ──────────────────────────────────────────────────────────────────────────────

func TestList_CacheaYSeInvalidaPorMutacion(t *testing.T) {
	f := buildFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, valetRequest(1, true))
	require.NoError(t, err)
	llamadasBase := f.ticketRepo.listCalls

	_, err = f.uc.List(ctx, "", nil, nil, 20, 0)
	require.NoError(t, err)
	_, err = f.uc.List(ctx, "", nil, nil, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, llamadasBase+1, f.ticketRepo.listCalls,
		"el segundo listado idéntico debe salir del caché")

	// Cualquier mutación invalida el namespace de tickets.
	in := valetRequest(1, true)
	in.ClienteTelefono = "1166660000"
	_, err = f.uc.Create(ctx, in)
	require.NoError(t, err)

	lista, err := f.uc.List(ctx, "", nil, nil, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, llamadasBase+2, f.ticketRepo.listCalls,
		"después de crear un ticket el listado vuelve a la DB")
	assert.Len(t, lista, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_GeneraPDF(t *testing.T) {
	f := buildFixture()
	out, err := f.uc.Create(context.Background(), valetRequest(1, true))
	require.NoError(t, err)

	pdfBytes, err := f.uc.Receipt(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Contains(t, string(pdfBytes), out.Numero)
}

func TestReceipt_TicketInexistente(t *testing.T) {
	f := buildFixture()
	_, err := f.uc.Receipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
