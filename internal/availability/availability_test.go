package availability

import (
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// date builds a UTC midnight, the form every booking date takes.
func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testInventory returns the standard fixture: five STANDARD rooms
// (101-105), two PREMIUM rooms (201, 202) and one SUITE (301), all
// active.
func testInventory() []model.Room {
    rooms := []model.Room{}
    id := uint64(1)
    for _, n := range []uint32{101, 102, 103, 104, 105} {
        rooms = append(rooms, model.Room{ID: id, RoomNumber: n, Category: model.CategoryStandard, IsActive: true})
        id++
    }
    for _, n := range []uint32{201, 202} {
        rooms = append(rooms, model.Room{ID: id, RoomNumber: n, Category: model.CategoryPremium, IsActive: true})
        id++
    }
    rooms = append(rooms, model.Room{ID: id, RoomNumber: 301, Category: model.CategorySuite, IsActive: true})
    return rooms
}

func roomNumbers(rooms []model.Room) []uint32 {
    out := make([]uint32, 0, len(rooms))
    for _, r := range rooms {
        out = append(out, r.RoomNumber)
    }
    return out
}

func equalNumbers(a, b []uint32) bool {
    if len(a) != len(b) {
        return false
    }
    for i := range a {
        if a[i] != b[i] {
            return false
        }
    }
    return true
}

func TestFreeRoomsRejectsInvalidRange(t *testing.T) {
    rooms := testInventory()
    if _, err := FreeRooms(rooms, NewSnapshot(nil), date(2026, 1, 5), date(2026, 1, 5), nil); !errors.Is(err, ErrInvalidRange) {
        t.Fatalf("expected ErrInvalidRange for empty range, got %v", err)
    }
    if _, err := FreeRooms(rooms, NewSnapshot(nil), date(2026, 1, 5), date(2026, 1, 1), nil); !errors.Is(err, ErrInvalidRange) {
        t.Fatalf("expected ErrInvalidRange for inverted range, got %v", err)
    }
}

func TestFreeRoomsHalfOpenOverlap(t *testing.T) {
    rooms := testInventory()
    // Room 101 (id 1) is booked Jan 4 to Jan 6 (checkout on the 6th).
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 1, StartsOn: date(2026, 1, 4), EndsOn: date(2026, 1, 6)},
    })
    cases := []struct {
        name     string
        from, to time.Time
        wantFree bool
    }{
        {"strictly before", date(2026, 1, 1), date(2026, 1, 4), true},
        {"checkout day start", date(2026, 1, 6), date(2026, 1, 9), true},
        {"overlapping tail", date(2026, 1, 5), date(2026, 1, 8), false},
        {"overlapping head", date(2026, 1, 2), date(2026, 1, 5), false},
        {"containing", date(2026, 1, 1), date(2026, 1, 10), false},
        {"contained", date(2026, 1, 4), date(2026, 1, 5), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            free, err := FreeRooms(rooms, snap, tc.from, tc.to, nil)
            if err != nil {
                t.Fatalf("FreeRooms: %v", err)
            }
            found := false
            for _, r := range free {
                if r.ID == 1 {
                    found = true
                }
            }
            if found != tc.wantFree {
                t.Fatalf("room 101 free=%v, want %v", found, tc.wantFree)
            }
        })
    }
}

func TestFreeRoomsExcludesInactiveAndFiltersCategory(t *testing.T) {
    rooms := testInventory()
    rooms[0].IsActive = false // 101 is out of service
    snap := NewSnapshot(nil)

    free, err := FreeRooms(rooms, snap, date(2026, 1, 1), date(2026, 1, 5), nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    if len(free) != len(rooms)-1 {
        t.Fatalf("expected %d free rooms, got %d", len(rooms)-1, len(free))
    }
    for _, r := range free {
        if r.RoomNumber == 101 {
            t.Fatal("inactive room must never be free")
        }
    }

    premium := model.CategoryPremium
    free, err = FreeRooms(rooms, snap, date(2026, 1, 1), date(2026, 1, 5), &premium)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    if !equalNumbers(roomNumbers(free), []uint32{201, 202}) {
        t.Fatalf("category filter returned %v", roomNumbers(free))
    }
}

func TestFreeRoomsSharedExclusionDomain(t *testing.T) {
    rooms := testInventory()
    blockID := uint64(7)
    // Room 102 is taken by an individual booking, 103 by a block.
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 2, StartsOn: date(2026, 2, 1), EndsOn: date(2026, 2, 8)},
        {ID: 2, RoomID: 3, StartsOn: date(2026, 2, 1), EndsOn: date(2026, 2, 8), BlockID: &blockID},
    })
    free, err := FreeRooms(rooms, snap, date(2026, 2, 3), date(2026, 2, 5), nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    for _, r := range free {
        if r.ID == 2 || r.ID == 3 {
            t.Fatalf("room %d should be excluded regardless of booking origin", r.RoomNumber)
        }
    }
}

func TestFreeRoomsIgnoresCancelledBookings(t *testing.T) {
    rooms := testInventory()
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 1, StartsOn: date(2026, 3, 1), EndsOn: date(2026, 3, 10), Cancelled: true},
    })
    free, err := FreeRooms(rooms, snap, date(2026, 3, 2), date(2026, 3, 4), nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    if len(free) != len(rooms) {
        t.Fatalf("cancelled booking must not block availability; free=%v", roomNumbers(free))
    }
}

// Releasing a block cancels its bookings; the free set for the range
// must return to its pre-commit value.
func TestReleaseRestoresFreeSet(t *testing.T) {
    rooms := testInventory()
    from, to := date(2026, 4, 1), date(2026, 4, 5)

    before, err := FreeRooms(rooms, NewSnapshot(nil), from, to, nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }

    blockID := uint64(9)
    committed := []model.Booking{
        {ID: 1, RoomID: 1, StartsOn: from, EndsOn: to, BlockID: &blockID},
        {ID: 2, RoomID: 6, StartsOn: from, EndsOn: to, BlockID: &blockID},
    }
    during, err := FreeRooms(rooms, NewSnapshot(committed), from, to, nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    if len(during) != len(before)-2 {
        t.Fatalf("commit should remove 2 rooms from the free set, got %d -> %d", len(before), len(during))
    }

    released := make([]model.Booking, len(committed))
    copy(released, committed)
    for i := range released {
        released[i].Cancelled = true
    }
    after, err := FreeRooms(rooms, NewSnapshot(released), from, to, nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }
    if !equalNumbers(roomNumbers(after), roomNumbers(before)) {
        t.Fatalf("release did not restore free set: before=%v after=%v", roomNumbers(before), roomNumbers(after))
    }
}
