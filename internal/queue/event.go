// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table booking is
// successfully confirmed. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	ClientID      uint64 `json:"client_id"`
	TableID       uint64 `json:"table_id"`
	TableNumber   string `json:"table_number"`
	PartySize     int    `json:"party_size"`
	ReservedAt    string `json:"reserved_at"`
	ConfirmedAt   string `json:"confirmed_at"`
}
