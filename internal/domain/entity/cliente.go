package entity

import "time"

// Cliente representa un cliente del local con su cuenta de fidelidad.
// El teléfono es la clave de búsqueda (único).
type Cliente struct {
	ID             string
	Nombre         string
	Telefono       string
	ValetsCount    int // valets pagados acumulados (módulo 9 para el valet gratis)
	LoyaltyPoints  int // 10 por valet pagado; 100 puntos = 1 valet gratis
	FreeValets     int // saldo de valets gratis disponibles
	ValetsRedeemed int // valets gratis ya canjeados
	LastVisit      time.Time
	Notas          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
