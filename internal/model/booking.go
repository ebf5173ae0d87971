package model

import "time"

// Booking is an occupying interval on a single room.  Both individual
// guest bookings and rooms held by a committed block are stored as
// bookings; a block-owned booking carries the owning block's ID.  The
// date range is half-open: StartsOn is the first occupied night and
// EndsOn is the checkout date, so two bookings on the same room may
// share a boundary date without conflict.
//
// Invariant: for any room, the set of non-cancelled bookings is
// pairwise disjoint under the half-open overlap test.  The commit
// paths in the service layer enforce this inside a transaction.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – the occupied room; a weak reference, deactivating the
//              room leaves past bookings untouched.
//  GuestName – display name for individual bookings; empty for rooms
//              held by a block.
//  StartsOn  – inclusive start date (UTC midnight).
//  EndsOn    – exclusive end date, i.e. checkout (UTC midnight).
//  Cancelled – cancelled bookings stay on record for audit and are
//              ignored by every availability computation.
//  BlockID   – owning block when this booking was created by a block
//              commit; nil for individual bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
    ID        uint64    // bookings.id
    RoomID    uint64    // bookings.room_id
    GuestName string    // bookings.guest_name
    StartsOn  time.Time // bookings.starts_on
    EndsOn    time.Time // bookings.ends_on
    Cancelled bool      // bookings.cancelled
    BlockID   *uint64   // bookings.block_id (nullable)
    CreatedAt time.Time // bookings.created_at
    UpdatedAt time.Time // bookings.updated_at
}

// Overlaps reports whether the booking's half-open range intersects
// [from, to).  Cancelled bookings never overlap anything.
func (b Booking) Overlaps(from, to time.Time) bool {
    if b.Cancelled {
        return false
    }
    return b.StartsOn.Before(to) && b.EndsOn.After(from)
}
