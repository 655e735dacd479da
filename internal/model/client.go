package model

import "time"

// Client represents a person who books tables through the system.
// Clients are identified by a unique, lowercase-normalized email
// address.  This struct corresponds to a row in the `clients` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – client full name (validated, capitalized).
//  Email        – unique email, stored lowercase.
//  Phone        – phone number validated for the PT region.
//  RegisteredAt – timestamp when the client registered.
//  IsActive     – soft-delete flag; inactive clients are hidden from listings.
type Client struct {
	ID           uint64    // clients.id
	Name         string    // clients.name
	Email        string    // clients.email
	Phone        string    // clients.phone
	RegisteredAt time.Time // clients.registered_at
	IsActive     bool      // clients.is_active
}
