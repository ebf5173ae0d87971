package availability

import (
    "sort"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// Snapshot holds the non-cancelled bookings of a horizon, grouped by
// room.  It is fetched once per operation (one range query) and then
// consulted in memory, so a horizon scan never issues per-day
// queries.  A Snapshot is read-only after construction.
type Snapshot map[uint64][]model.Booking

// NewSnapshot groups bookings by room id.  Cancelled bookings are
// dropped here so every later overlap test can ignore the flag.
func NewSnapshot(bookings []model.Booking) Snapshot {
    snap := make(Snapshot)
    for _, b := range bookings {
        if b.Cancelled {
            continue
        }
        snap[b.RoomID] = append(snap[b.RoomID], b)
    }
    return snap
}

// RoomFree reports whether a room has no booking in the snapshot
// overlapping [from, to).  Individual bookings and block-owned
// bookings share the same exclusion domain; any overlap makes the
// room unavailable.
func (s Snapshot) RoomFree(roomID uint64, from, to time.Time) bool {
    for _, b := range s[roomID] {
        if b.Overlaps(from, to) {
            return false
        }
    }
    return true
}

// FreeRooms returns every active room with no snapshot booking
// overlapping [from, to), optionally restricted to one category.  The
// result is sorted by category (allocation order) then room number
// ascending, which is the stable order the allocator depends on.  It
// returns ErrInvalidRange when to is not after from.
func FreeRooms(rooms []model.Room, snap Snapshot, from, to time.Time, category *model.RoomCategory) ([]model.Room, error) {
    if !to.After(from) {
        return nil, ErrInvalidRange
    }
    free := make([]model.Room, 0, len(rooms))
    for _, r := range rooms {
        if !r.IsActive {
            continue
        }
        if category != nil && r.Category != *category {
            continue
        }
        if snap.RoomFree(r.ID, from, to) {
            free = append(free, r)
        }
    }
    sortRooms(free)
    return free, nil
}

// FreeByCategory computes the free set for [from, to) and groups it
// per category, each group sorted by room number ascending.  All
// categories present in the inventory appear as keys, possibly with
// empty slices, so the allocator can report available=0 shortages.
func FreeByCategory(rooms []model.Room, snap Snapshot, from, to time.Time) (map[model.RoomCategory][]model.Room, error) {
    free, err := FreeRooms(rooms, snap, from, to, nil)
    if err != nil {
        return nil, err
    }
    byCat := make(map[model.RoomCategory][]model.Room, len(model.Categories))
    for _, c := range model.Categories {
        byCat[c] = []model.Room{}
    }
    for _, r := range free {
        byCat[r.Category] = append(byCat[r.Category], r)
    }
    return byCat, nil
}

// categoryRank maps a category to its position in the fixed
// allocation order.  Unknown categories sort last.
func categoryRank(c model.RoomCategory) int {
    for i, known := range model.Categories {
        if c == known {
            return i
        }
    }
    return len(model.Categories)
}

// sortRooms orders rooms by category rank then room number.  The
// sort is what makes allocation deterministic: the same free set
// always yields the same selection.
func sortRooms(rooms []model.Room) {
    sort.Slice(rooms, func(i, j int) bool {
        ri, rj := rooms[i], rooms[j]
        if ri.Category != rj.Category {
            return categoryRank(ri.Category) < categoryRank(rj.Category)
        }
        return ri.RoomNumber < rj.RoomNumber
    })
}
