package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de sólo lectura para el dashboard del local.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenue ingresos cobrados del período: tickets pagados no cancelados.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)
	FROM tickets
	WHERE is_paid AND status <> 'canceled' AND created_at BETWEEN $1 AND $2`

	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetRevenue: %w", err)
	}
	return revenue, nil
}

// GetTicketsByStatus cantidad de tickets por estado creados en el período.
func (r *AnalyticsRepo) GetTicketsByStatus(ctx context.Context, from, to time.Time) ([]repository.StatusCountResult, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM tickets
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY status
	ORDER BY status`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTicketsByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCountResult
	for rows.Next() {
		var row repository.StatusCountResult
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetTicketsByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPaymentBreakdown ingresos cobrados agrupados por método de pago.
// Los tickets sin método registrado se consolidan en el grupo "efectivo".
func (r *AnalyticsRepo) GetPaymentBreakdown(ctx context.Context, from, to time.Time) ([]repository.PaymentBreakdownResult, error) {
	const query = `
	SELECT
	    COALESCE(payment_method, 'efectivo') AS payment_method,
	    COUNT(*)                             AS ticket_count,
	    COALESCE(SUM(total), 0)              AS revenue
	FROM tickets
	WHERE is_paid AND status <> 'canceled' AND created_at BETWEEN $1 AND $2
	GROUP BY COALESCE(payment_method, 'efectivo')
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentBreakdownResult
	for rows.Next() {
		var row repository.PaymentBreakdownResult
		if err := rows.Scan(&row.PaymentMethod, &row.TicketCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetPaymentBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopTintoreria los `limit` artículos de tintorería con mayor ingreso del período.
func (r *AnalyticsRepo) GetTopTintoreria(ctx context.Context, from, to time.Time, limit int) ([]repository.TopItemResult, error) {
	const query = `
	SELECT
	    ti.item_id,
	    ti.nombre,
	    SUM(ti.quantity)                     AS quantity,
	    SUM(ti.unit_price * ti.quantity)     AS revenue
	FROM ticket_items ti
	JOIN tickets t ON t.id = ti.ticket_id
	WHERE t.status <> 'canceled' AND t.created_at BETWEEN $1 AND $2
	GROUP BY ti.item_id, ti.nombre
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopTintoreria: %w", err)
	}
	defer rows.Close()

	var results []repository.TopItemResult
	for rows.Next() {
		var row repository.TopItemResult
		if err := rows.Scan(&row.ItemID, &row.Nombre, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopTintoreria scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetGastosTotal total de gastos del período.
func (r *AnalyticsRepo) GetGastosTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(monto), 0)
	FROM gastos
	WHERE fecha BETWEEN $1 AND $2`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetGastosTotal: %w", err)
	}
	return total, nil
}
