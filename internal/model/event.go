package model

import "time"

// Status is the derived lifecycle state of a table.
type Status string

const (
	StatusFree     Status = "Livre"
	StatusReserved Status = "Reservado"
	StatusSold     Status = "Vendido"
)

// ReservationEvent is one row of the append-only reservation log. A table may
// have several historical events; only the most recent one is authoritative.
type ReservationEvent struct {
	ID          string    `json:"id"`
	TableID     string    `json:"table_id"`
	Status      Status    `json:"status"`
	Customer    string    `json:"customer"`
	Referrer    string    `json:"referrer"`
	Phone       string    `json:"phone"`
	AmountRaw   string    `json:"amount_raw"` // charged amount as stored, possibly malformed
	ReservedAt  time.Time `json:"reserved_at"`
	ConfirmedAt time.Time `json:"confirmed_at"` // zero until the sale is confirmed
}
