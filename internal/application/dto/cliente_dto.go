package dto

import "time"

// ClienteResponse salida de un cliente con su cuenta de fidelidad.
type ClienteResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Telefono       string    `json:"telefono"`
	ValetsCount    int       `json:"valets_count"`
	LoyaltyPoints  int       `json:"loyalty_points"`
	FreeValets     int       `json:"free_valets"`
	ValetsRedeemed int       `json:"valets_redeemed"`
	LastVisit      time.Time `json:"last_visit"`
	Notas          string    `json:"notas,omitempty"`
}

// UpdateClienteRequest edición de datos del cliente.
type UpdateClienteRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Notas  string `json:"notas" validate:"omitempty,max=1000"`
}

// LoyaltyResponse resumen de fidelidad devuelto tras consultas y canjes.
type LoyaltyResponse struct {
	Telefono       string `json:"telefono"`
	ValetsCount    int    `json:"valets_count"`
	LoyaltyPoints  int    `json:"loyalty_points"`
	FreeValets     int    `json:"free_valets"`
	ValetsRedeemed int    `json:"valets_redeemed"`
	// Valets pagados que faltan para el próximo valet gratis (9 - count mod 9).
	ParaProximoGratis int `json:"para_proximo_gratis"`
}
