package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusCountResult cantidad de tickets por estado.
type StatusCountResult struct {
	Status string
	Count  int
}

// PaymentBreakdownResult ingresos agrupados por método de pago.
type PaymentBreakdownResult struct {
	PaymentMethod string
	TicketCount   int
	Revenue       decimal.Decimal
}

// TopItemResult artículo de tintorería con mayor ingreso del período.
type TopItemResult struct {
	ItemID   string
	Nombre   string
	Quantity int
	Revenue  decimal.Decimal
}

// AnalyticsRepository consultas de sólo lectura para el dashboard.
type AnalyticsRepository interface {
	// GetRevenue ingresos de tickets entregados y cobrados en el período.
	GetRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// GetTicketsByStatus cantidad de tickets por estado creados en el período.
	GetTicketsByStatus(ctx context.Context, from, to time.Time) ([]StatusCountResult, error)
	// GetPaymentBreakdown ingresos por método de pago del período.
	GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]PaymentBreakdownResult, error)
	// GetTopTintoreria artículos de tintorería con mayor ingreso del período.
	GetTopTintoreria(ctx context.Context, from, to time.Time, limit int) ([]TopItemResult, error)
	// GetGastosTotal total de gastos del período.
	GetGastosTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
