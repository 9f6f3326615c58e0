package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, más desgloses para los widgets del panel.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodayRevenue decimal.Decimal `json:"today_revenue"` // ingresos cobrados hoy
	TodayGastos  decimal.Decimal `json:"today_gastos"`  // gastos registrados hoy

	// Métricas del mes en curso (día 1 – hoy)
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	MonthlyGastos  decimal.Decimal `json:"monthly_gastos"`
	MonthlyMargin  decimal.Decimal `json:"monthly_margin"` // revenue - gastos

	// Tickets por estado del mes (widget de carga de trabajo)
	TicketsByStatus []StatusCountDTO `json:"tickets_by_status"`

	// Ingresos por método de pago del mes
	PaymentBreakdown []PaymentBreakdownDTO `json:"payment_breakdown"`

	// Top 5 artículos de tintorería por ingreso del mes
	TopTintoreria []TopItemDTO `json:"top_tintoreria"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// StatusCountDTO cantidad de tickets en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PaymentBreakdownDTO ingresos de un método de pago.
type PaymentBreakdownDTO struct {
	PaymentMethod string          `json:"payment_method"`
	TicketCount   int             `json:"ticket_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// TopItemDTO resumen de un artículo de tintorería para el widget.
type TopItemDTO struct {
	ItemID   string          `json:"item_id"`
	Nombre   string          `json:"nombre"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
