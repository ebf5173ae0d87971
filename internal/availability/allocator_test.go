package availability

import (
    "errors"
    "testing"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

func freeSet(t *testing.T, rooms []model.Room, snap Snapshot) map[model.RoomCategory][]model.Room {
    t.Helper()
    byCat, err := FreeByCategory(rooms, snap, date(2026, 1, 1), date(2026, 1, 5))
    if err != nil {
        t.Fatalf("FreeByCategory: %v", err)
    }
    return byCat
}

// The worked example: all rooms free, quota 3 STANDARD + 2 PREMIUM
// selects the three lowest-numbered standard rooms and both premium
// rooms.
func TestAllocateSelectsLowestNumbered(t *testing.T) {
    rooms := testInventory()
    byCat := freeSet(t, rooms, NewSnapshot(nil))

    selected, err := Allocate(byCat, map[model.RoomCategory]int{
        model.CategoryStandard: 3,
        model.CategoryPremium:  2,
    })
    if err != nil {
        t.Fatalf("Allocate: %v", err)
    }
    if !equalNumbers(roomNumbers(selected), []uint32{101, 102, 103, 201, 202}) {
        t.Fatalf("unexpected selection %v", roomNumbers(selected))
    }
}

func TestAllocateDeterminism(t *testing.T) {
    rooms := testInventory()
    quota := map[model.RoomCategory]int{model.CategoryStandard: 2, model.CategorySuite: 1}

    first, err := Allocate(freeSet(t, rooms, NewSnapshot(nil)), quota)
    if err != nil {
        t.Fatalf("Allocate: %v", err)
    }
    second, err := Allocate(freeSet(t, rooms, NewSnapshot(nil)), quota)
    if err != nil {
        t.Fatalf("Allocate: %v", err)
    }
    if !equalNumbers(roomNumbers(first), roomNumbers(second)) {
        t.Fatalf("allocation not deterministic: %v vs %v", roomNumbers(first), roomNumbers(second))
    }
}

// A second block asking for one PREMIUM room after both were taken
// must fail with required=1 available=0, and must select nothing.
func TestAllocateInsufficientAfterCommit(t *testing.T) {
    rooms := testInventory()
    blockID := uint64(1)
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 6, StartsOn: date(2026, 1, 1), EndsOn: date(2026, 1, 5), BlockID: &blockID},
        {ID: 2, RoomID: 7, StartsOn: date(2026, 1, 1), EndsOn: date(2026, 1, 5), BlockID: &blockID},
    })

    selected, err := Allocate(freeSet(t, rooms, snap), map[model.RoomCategory]int{model.CategoryPremium: 1})
    if selected != nil {
        t.Fatalf("insufficient allocation must select nothing, got %v", roomNumbers(selected))
    }
    var ins *InsufficientError
    if !errors.As(err, &ins) {
        t.Fatalf("expected InsufficientError, got %v", err)
    }
    got, ok := ins.Shortages[model.CategoryPremium]
    if !ok {
        t.Fatalf("shortage map missing PREMIUM: %v", ins.Shortages)
    }
    if got.Required != 1 || got.Available != 0 {
        t.Fatalf("shortage = %+v, want required=1 available=0", got)
    }
}

// One short category fails the whole quota even when the others fit.
func TestAllocateAllOrNothing(t *testing.T) {
    rooms := testInventory()
    byCat := freeSet(t, rooms, NewSnapshot(nil))

    _, err := Allocate(byCat, map[model.RoomCategory]int{
        model.CategoryStandard: 2,
        model.CategorySuite:    5, // only one suite exists
    })
    var ins *InsufficientError
    if !errors.As(err, &ins) {
        t.Fatalf("expected InsufficientError, got %v", err)
    }
    if len(ins.Shortages) != 1 {
        t.Fatalf("only the short category should be reported: %v", ins.Shortages)
    }
    if s := ins.Shortages[model.CategorySuite]; s.Required != 5 || s.Available != 1 {
        t.Fatalf("suite shortage = %+v", s)
    }
}

func TestAllocateQuotaValidation(t *testing.T) {
    byCat := freeSet(t, testInventory(), NewSnapshot(nil))

    if _, err := Allocate(byCat, map[model.RoomCategory]int{}); !errors.Is(err, ErrEmptyQuota) {
        t.Fatalf("empty map: got %v", err)
    }
    if _, err := Allocate(byCat, map[model.RoomCategory]int{model.CategoryStandard: 0}); !errors.Is(err, ErrEmptyQuota) {
        t.Fatalf("all-zero quota: got %v", err)
    }
    if _, err := Allocate(byCat, map[model.RoomCategory]int{model.CategoryStandard: -1}); !errors.Is(err, ErrNegativeQuota) {
        t.Fatalf("negative quota: got %v", err)
    }
}

func TestAllocateTotal(t *testing.T) {
    rooms := testInventory()
    free, err := FreeRooms(rooms, NewSnapshot(nil), date(2026, 1, 1), date(2026, 1, 5), nil)
    if err != nil {
        t.Fatalf("FreeRooms: %v", err)
    }

    selected, err := AllocateTotal(free, 6)
    if err != nil {
        t.Fatalf("AllocateTotal: %v", err)
    }
    // Stable order fills all standards first, then the first premium.
    if !equalNumbers(roomNumbers(selected), []uint32{101, 102, 103, 104, 105, 201}) {
        t.Fatalf("unexpected selection %v", roomNumbers(selected))
    }

    _, err = AllocateTotal(free, len(free)+1)
    var ins *InsufficientError
    if !errors.As(err, &ins) {
        t.Fatalf("expected InsufficientError, got %v", err)
    }
    if s := ins.Shortages[TotalQuotaKey]; s.Required != len(free)+1 || s.Available != len(free) {
        t.Fatalf("total shortage = %+v", s)
    }

    if _, err := AllocateTotal(free, 0); !errors.Is(err, ErrEmptyQuota) {
        t.Fatalf("zero total: got %v", err)
    }
}
