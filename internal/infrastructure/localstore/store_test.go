package localstore_test

import (
	"encoding/json"
	"testing"

	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payloadPrueba struct {
	Concepto string `json:"concepto"`
	Monto    int    `json:"monto"`
}

func buildStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_AppendYListPending(t *testing.T) {
	s := buildStore(t)

	require.NoError(t, s.Append(localstore.EntidadGastos, payloadPrueba{Concepto: "jabón", Monto: 2000}))
	require.NoError(t, s.Append(localstore.EntidadGastos, payloadPrueba{Concepto: "perfume", Monto: 1500}))

	records, err := s.ListPending(localstore.EntidadGastos)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEmpty(t, records[0].ID, "cada pendiente recibe un ID propio")
	assert.NotEqual(t, records[0].ID, records[1].ID)

	var p payloadPrueba
	require.NoError(t, json.Unmarshal(records[0].Payload, &p))
	assert.Equal(t, "jabón", p.Concepto, "el orden de encolado se preserva")
}

func TestStore_ColasIndependientesPorEntidad(t *testing.T) {
	s := buildStore(t)

	require.NoError(t, s.Append(localstore.EntidadGastos, payloadPrueba{Concepto: "jabón"}))
	require.NoError(t, s.Append(localstore.EntidadTickets, payloadPrueba{Concepto: "ticket"}))

	gastos, err := s.ListPending(localstore.EntidadGastos)
	require.NoError(t, err)
	tickets, err := s.ListPending(localstore.EntidadTickets)
	require.NoError(t, err)

	assert.Len(t, gastos, 1)
	assert.Len(t, tickets, 1)
}

func TestStore_RemoveSacaSoloElIndicado(t *testing.T) {
	s := buildStore(t)
	require.NoError(t, s.Append(localstore.EntidadClientes, payloadPrueba{Concepto: "a"}))
	require.NoError(t, s.Append(localstore.EntidadClientes, payloadPrueba{Concepto: "b"}))

	records, err := s.ListPending(localstore.EntidadClientes)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NoError(t, s.Remove(localstore.EntidadClientes, records[0].ID))

	restantes, err := s.ListPending(localstore.EntidadClientes)
	require.NoError(t, err)
	require.Len(t, restantes, 1)
	assert.Equal(t, records[1].ID, restantes[0].ID)
}

func TestStore_Clear(t *testing.T) {
	s := buildStore(t)
	require.NoError(t, s.Append(localstore.EntidadFeedback, payloadPrueba{Concepto: "x"}))

	require.NoError(t, s.Clear(localstore.EntidadFeedback))

	records, err := s.ListPending(localstore.EntidadFeedback)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_EntidadVaciaNoEsError(t *testing.T) {
	s := buildStore(t)
	records, err := s.ListPending(localstore.EntidadTickets)
	require.NoError(t, err, "una cola sin archivo es simplemente una cola vacía")
	assert.Empty(t, records)
}

func TestStore_SobreviveReapertura(t *testing.T) {
	dir := t.TempDir()
	s1, err := localstore.New(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Append(localstore.EntidadGastos, payloadPrueba{Concepto: "jabón"}))

	s2, err := localstore.New(dir)
	require.NoError(t, err)
	records, err := s2.ListPending(localstore.EntidadGastos)
	require.NoError(t, err)
	assert.Len(t, records, 1, "los pendientes persisten entre procesos")
}
