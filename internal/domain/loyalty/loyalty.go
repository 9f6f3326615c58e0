// Package loyalty implementa las reglas de fidelidad del local:
// 10 puntos por valet pagado, cada 9 valets pagados un valet gratis,
// y canje de 100 puntos por un valet gratis.
//
// Todas las operaciones son transformaciones puras sobre un snapshot del
// cliente. El caller persiste el resultado; la serialización de mutaciones
// concurrentes sobre el mismo cliente corre por cuenta de la capa de
// persistencia (transacción por canje).
package loyalty

import (
	"time"

	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
)

const (
	// PointsPerValet puntos otorgados por cada valet pagado.
	PointsPerValet = 10
	// ValetsForFree cada 9 valets pagados se otorga 1 valet gratis.
	ValetsForFree = 9
	// PointsForFreeValet costo en puntos de un valet gratis.
	PointsForFreeValet = 100
)

// RecordCompletedValet registra un valet confirmado sobre el snapshot.
// Cuando isPaid es false no hay acumulación (el valet gratis no suma).
//
//   - ValetsCount +1 y LoyaltyPoints +10.
//   - Si el contador llega a un múltiplo de 9, FreeValets +1.
func RecordCompletedValet(c *entity.Cliente, isPaid bool, now time.Time) {
	if !isPaid {
		return
	}
	c.ValetsCount++
	c.LoyaltyPoints += PointsPerValet
	if c.ValetsCount%ValetsForFree == 0 {
		c.FreeValets++
	}
	c.LastVisit = now
	c.UpdatedAt = now
}

// RedeemFreeValet consume un valet gratis del saldo.
// Con saldo en cero retorna ErrInsufficientBalance y no modifica el snapshot.
func RedeemFreeValet(c *entity.Cliente, now time.Time) error {
	if c.FreeValets <= 0 {
		return domain.ErrInsufficientBalance
	}
	c.FreeValets--
	c.ValetsRedeemed++
	c.UpdatedAt = now
	return nil
}

// RedeemPointsForValet canjea 100 puntos por un valet gratis.
// Con menos de 100 puntos retorna ErrInsufficientPoints y no modifica el snapshot.
func RedeemPointsForValet(c *entity.Cliente, now time.Time) error {
	if c.LoyaltyPoints < PointsForFreeValet {
		return domain.ErrInsufficientPoints
	}
	c.LoyaltyPoints -= PointsForFreeValet
	c.FreeValets++
	c.UpdatedAt = now
	return nil
}
