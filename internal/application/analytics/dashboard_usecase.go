// Package analytics contiene los casos de uso del dashboard del local:
// KPIs de ingresos, gastos y carga de trabajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopItems = 5 // artículos de tintorería en el widget

// DashboardUseCase genera el resumen financiero del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Siete consultas en paralelo:
//  1. GetRevenue(hoy)            → TodayRevenue
//  2. GetGastosTotal(hoy)        → TodayGastos
//  3. GetRevenue(mes)            → MonthlyRevenue
//  4. GetGastosTotal(mes)        → MonthlyGastos
//  5. GetTicketsByStatus(mes)    → TicketsByStatus
//  6. GetPaymentBreakdown(mes)   → PaymentBreakdown
//  7. GetTopTintoreria(mes, 5)   → TopTintoreria
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type decimalResult struct {
		value decimal.Decimal
		err   error
	}
	type statusResult struct {
		rows []repository.StatusCountResult
		err  error
	}
	type paymentResult struct {
		rows []repository.PaymentBreakdownResult
		err  error
	}
	type topResult struct {
		rows []repository.TopItemResult
		err  error
	}

	todayRevCh := make(chan decimalResult, 1)
	todayGasCh := make(chan decimalResult, 1)
	monthRevCh := make(chan decimalResult, 1)
	monthGasCh := make(chan decimalResult, 1)
	statusCh := make(chan statusResult, 1)
	paymentCh := make(chan paymentResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		v, err := uc.analyticsRepo.GetRevenue(ctx, todayStart, todayEnd)
		todayRevCh <- decimalResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetGastosTotal(ctx, todayStart, todayEnd)
		todayGasCh <- decimalResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetRevenue(ctx, monthStart, monthEnd)
		monthRevCh <- decimalResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetGastosTotal(ctx, monthStart, monthEnd)
		monthGasCh <- decimalResult{v, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTicketsByStatus(ctx, monthStart, monthEnd)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetPaymentBreakdown(ctx, monthStart, monthEnd)
		paymentCh <- paymentResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopTintoreria(ctx, monthStart, monthEnd, dashboardTopItems)
		topCh <- topResult{rows, err}
	}()

	todayRev := <-todayRevCh
	todayGas := <-todayGasCh
	monthRev := <-monthRevCh
	monthGas := <-monthGasCh
	status := <-statusCh
	payment := <-paymentCh
	top := <-topCh

	if todayRev.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", todayRev.err)
	}
	if todayGas.err != nil {
		return nil, fmt.Errorf("dashboard: gastos de hoy: %w", todayGas.err)
	}
	if monthRev.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", monthRev.err)
	}
	if monthGas.err != nil {
		return nil, fmt.Errorf("dashboard: gastos del mes: %w", monthGas.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: tickets por estado: %w", status.err)
	}
	if payment.err != nil {
		return nil, fmt.Errorf("dashboard: desglose de pagos: %w", payment.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top tintorería: %w", top.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		TodayRevenue:   todayRev.value.Round(2),
		TodayGastos:    todayGas.value.Round(2),
		MonthlyRevenue: monthRev.value.Round(2),
		MonthlyGastos:  monthGas.value.Round(2),
		MonthlyMargin:  monthRev.value.Sub(monthGas.value).Round(2),
		DateLabel:      monthLabel(now),
	}
	for _, r := range status.rows {
		out.TicketsByStatus = append(out.TicketsByStatus, dto.StatusCountDTO{
			Status: r.Status, Count: r.Count,
		})
	}
	for _, r := range payment.rows {
		out.PaymentBreakdown = append(out.PaymentBreakdown, dto.PaymentBreakdownDTO{
			PaymentMethod: r.PaymentMethod, TicketCount: r.TicketCount, Revenue: r.Revenue.Round(2),
		})
	}
	for _, r := range top.rows {
		out.TopTintoreria = append(out.TopTintoreria, dto.TopItemDTO{
			ItemID: r.ItemID, Nombre: r.Nombre, Quantity: r.Quantity, Revenue: r.Revenue.Round(2),
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
