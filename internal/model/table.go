package model

// Table is a bookable table inside an environment.  The Number field
// is a human label (e.g. "M1", "VIP-2") and is not globally unique.
// Capacity bounds the party size of any reservation placed on it.
// This struct corresponds to a row in the `restaurant_tables` table.
//
// Fields:
//  ID            – primary key identifier.
//  Number        – table label, 1–10 chars, alphanumeric/dash/underscore.
//  Capacity      – number of seats, in [1,20].
//  EnvironmentID – owning environment; must exist at creation.
//  IsActive      – soft-delete flag; inactive tables never appear as available.
//  Notes         – optional free-text notes.
type Table struct {
	ID            uint64  // restaurant_tables.id
	Number        string  // restaurant_tables.number
	Capacity      int     // restaurant_tables.capacity
	EnvironmentID uint64  // restaurant_tables.environment_id
	IsActive      bool    // restaurant_tables.is_active
	Notes         *string // restaurant_tables.notes (nullable)
}
