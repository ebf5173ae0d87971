package model

import "time"

// RoomCategory classifies a room into one of the hotel's fixed
// room classes.  The set is closed: every room belongs to exactly
// one category and the allocation engine iterates over Categories
// in this order when selecting rooms.
type RoomCategory string

const (
    CategoryStandard RoomCategory = "STANDARD"
    CategoryPremium  RoomCategory = "PREMIUM"
    CategorySuite    RoomCategory = "SUITE"
)

// Categories lists all room categories in allocation order.  The
// ordering is part of the allocator's determinism contract, so new
// categories must be appended deliberately.
var Categories = []RoomCategory{CategoryStandard, CategoryPremium, CategorySuite}

// ParseCategory normalizes a raw string into a RoomCategory.  It
// returns false when the value does not name a known category.
func ParseCategory(raw string) (RoomCategory, bool) {
    switch RoomCategory(raw) {
    case CategoryStandard, CategoryPremium, CategorySuite:
        return RoomCategory(raw), true
    }
    return "", false
}

// RoomStatus is the operational display state of a room shown on the
// front-desk dashboard.  It is a derived cache only: availability is
// always computed from the bookings table, never from this field, so
// a stale status can never cause a double booking.
type RoomStatus string

const (
    StatusFree     RoomStatus = "FREE"
    StatusHeld     RoomStatus = "HELD"
    StatusOccupied RoomStatus = "OCCUPIED"
)

// Room describes a physical hotel room.  Rooms are uniquely
// identified by their room number.
//
// Fields:
//  ID         – primary key identifier.
//  RoomNumber – the number printed on the door; allocation order
//               within a category follows this number ascending.
//  Category   – fixed room class (STANDARD, PREMIUM, SUITE).
//  Status     – display state (FREE, HELD, OCCUPIED); not
//               authoritative for availability.
//  IsActive   – inactive rooms are permanently excluded from
//               allocation but keep their historical bookings.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Room struct {
    ID         uint64       // rooms.id
    RoomNumber uint32       // rooms.room_number
    Category   RoomCategory // rooms.category
    Status     RoomStatus   // rooms.status
    IsActive   bool         // rooms.is_active
    CreatedAt  time.Time    // rooms.created_at
    UpdatedAt  time.Time    // rooms.updated_at
}
