package dto

// SyncResult cuántos registros pendientes se subieron por tipo de entidad.
// Un fallo en una categoría no aborta las demás: la categoría fallida
// simplemente reporta menos registros subidos.
type SyncResult struct {
	TicketsSync  int `json:"tickets_sync"`
	GastosSync   int `json:"gastos_sync"`
	ClientesSync int `json:"clientes_sync"`
	FeedbackSync int `json:"feedback_sync"`
}
