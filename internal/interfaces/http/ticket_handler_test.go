package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Rango de fechas de listados
// ──────────────────────────────────────────────────────────────────────────────

func TestEndOfDay_IncluyeElDiaPedido(t *testing.T) {
	dia, err := time.ParseInLocation("2006-01-02", "2026-08-31", time.Local)
	require.NoError(t, err)

	fin := endOfDay(dia)

	assert.Equal(t, dia.Day(), fin.Day(), "el límite queda dentro del mismo día")
	assert.Equal(t, 23, fin.Hour())
	assert.Equal(t, 59, fin.Minute())

	// Un ticket creado a la tarde del día "to" debe entrar en created_at <= to.
	creadoALaTarde := dia.Add(18 * time.Hour)
	assert.False(t, creadoALaTarde.After(fin))
	// Y el primer instante del día siguiente queda afuera.
	assert.True(t, dia.Add(24*time.Hour).After(fin))
}
