package model

// Environment is a named seating area within a restaurant, such as
// "Sala Principal" or "Esplanada".  Availability queries are always
// scoped to a single environment.  This struct corresponds to a row
// in the `environments` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – environment name.
//  Description  – optional free-text description.
//  RestaurantID – owning restaurant; must exist at creation.
//  IsActive     – soft-delete flag.
type Environment struct {
	ID           uint64  // environments.id
	Name         string  // environments.name
	Description  *string // environments.description (nullable)
	RestaurantID uint64  // environments.restaurant_id
	IsActive     bool    // environments.is_active
}
