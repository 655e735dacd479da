package model

import "time"

// Restaurant is the top of the ownership chain: a restaurant owns
// environments which in turn own tables.  Soft-deleting a restaurant
// cascades to its environments and tables.  This struct corresponds
// to a row in the `restaurants` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – restaurant name.
//  Address     – postal address (free text, required).
//  Phone       – contact phone, validated for the PT region.
//  Email       – optional contact email.
//  Description – optional free-text description.
//  IsActive    – soft-delete flag.
//  CreatedAt   – registration timestamp.
type Restaurant struct {
	ID          uint64    // restaurants.id
	Name        string    // restaurants.name
	Address     string    // restaurants.address
	Phone       string    // restaurants.phone
	Email       *string   // restaurants.email (nullable)
	Description *string   // restaurants.description (nullable)
	IsActive    bool      // restaurants.is_active
	CreatedAt   time.Time // restaurants.created_at
}
