package model

import "time"

// Block is a convention reservation: a multi-room hold over one date
// range, filled against a per-category quota.  A block starts as a
// draft, is committed exactly once (creating one booking per selected
// room), and may later be released, which cancels those bookings and
// returns the rooms to availability.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – public UUID handed to the organizer; stable across
//                the block's lifecycle.
//  Name        – organizer or event name.
//  StartsOn    – inclusive start date (UTC midnight).
//  EndsOn      – exclusive end date / checkout (UTC midnight).
//  QtyStandard – required STANDARD rooms.
//  QtyPremium  – required PREMIUM rooms.
//  QtySuite    – required SUITE rooms.
//  Committed   – true once rooms have been allocated and booked.
//  RoomIDs     – the rooms owned by the block; populated only while
//                committed.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Block struct {
    ID          uint64    // blocks.id
    Reference   string    // blocks.reference (UUID)
    Name        string    // blocks.name
    StartsOn    time.Time // blocks.starts_on
    EndsOn      time.Time // blocks.ends_on
    QtyStandard int       // blocks.qty_standard
    QtyPremium  int       // blocks.qty_premium
    QtySuite    int       // blocks.qty_suite
    Committed   bool      // blocks.committed
    RoomIDs     []uint64  // block_rooms.room_id, set when committed
    CreatedAt   time.Time // blocks.created_at
    UpdatedAt   time.Time // blocks.updated_at
}

// Quota returns the block's per-category requirement as a map keyed
// by category.  Categories with a zero requirement are included so
// callers can range over the full closed set.
func (b Block) Quota() map[RoomCategory]int {
    return map[RoomCategory]int{
        CategoryStandard: b.QtyStandard,
        CategoryPremium:  b.QtyPremium,
        CategorySuite:    b.QtySuite,
    }
}

// TotalQuota is the sum of all per-category requirements.
func (b Block) TotalQuota() int {
    return b.QtyStandard + b.QtyPremium + b.QtySuite
}
