package model

import "time"

// Hall represents a bookable venue on campus.  Halls are seeded reference
// data and never mutated at runtime; bookings reference them by ID.
// Amenities is stored as a JSON array in the `halls.amenities` column.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the hall.
//  Capacity  – maximum seated capacity.
//  Location  – building or block where the hall is found.
//  Amenities – list of amenity tags (projector, AC, stage, ...).
//  CreatedAt – creation timestamp.
type Hall struct {
    ID        uint64    // halls.id
    Name      string    // halls.name
    Capacity  uint32    // halls.capacity
    Location  string    // halls.location
    Amenities []string  // halls.amenities (JSON)
    CreatedAt time.Time // halls.created_at
}
