package availability

import (
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

func windowStarts(windows []Window) []time.Time {
    out := make([]time.Time, 0, len(windows))
    for _, w := range windows {
        out = append(out, w.Start)
    }
    return out
}

// The worked scan example: quota of 5 STANDARD rooms, duration 3
// nights, horizon Jan 1 to Jan 10, with room 101 booked Jan 4 to
// Jan 6.  Under half-open overlap the only 3-night windows where all
// five standard rooms are free start Jan 1 (ends on the 4th, the
// booking's first day) and Jan 6/Jan 7 (starting on the checkout
// day).
func TestFindWindowsAroundBookedInterval(t *testing.T) {
    rooms := testInventory()
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 1, StartsOn: date(2026, 1, 4), EndsOn: date(2026, 1, 6)},
    })

    windows, err := FindWindows(rooms, snap,
        date(2026, 1, 1), 3,
        map[model.RoomCategory]int{model.CategoryStandard: 5},
        date(2026, 1, 10))
    if err != nil {
        t.Fatalf("FindWindows: %v", err)
    }
    want := []time.Time{date(2026, 1, 1), date(2026, 1, 6), date(2026, 1, 7)}
    got := windowStarts(windows)
    if len(got) != len(want) {
        t.Fatalf("window starts = %v, want %v", got, want)
    }
    for i := range want {
        if !got[i].Equal(want[i]) {
            t.Fatalf("window %d starts %v, want %v", i, got[i], want[i])
        }
        if !windows[i].End.Equal(want[i].AddDate(0, 0, 3)) {
            t.Fatalf("window %d ends %v, want start+3d", i, windows[i].End)
        }
    }
}

func TestFindWindowsAscendingAndQuotaEcho(t *testing.T) {
    rooms := testInventory()
    quota := map[model.RoomCategory]int{model.CategoryPremium: 1, model.CategorySuite: 0}

    windows, err := FindWindows(rooms, NewSnapshot(nil), date(2026, 5, 1), 2, quota, date(2026, 5, 8))
    if err != nil {
        t.Fatalf("FindWindows: %v", err)
    }
    if len(windows) == 0 {
        t.Fatal("expected at least one window on an empty calendar")
    }
    for i := 1; i < len(windows); i++ {
        if !windows[i-1].Start.Before(windows[i].Start) {
            t.Fatalf("windows not strictly ascending at %d: %v", i, windowStarts(windows))
        }
    }
    for _, w := range windows {
        if w.Satisfied[model.CategoryPremium] != 1 {
            t.Fatalf("satisfied quota not echoed: %v", w.Satisfied)
        }
        if _, ok := w.Satisfied[model.CategorySuite]; ok {
            t.Fatalf("zero-count categories should be dropped from Satisfied: %v", w.Satisfied)
        }
    }
}

// A horizon that cannot fit a single window is an empty answer, not
// an error.
func TestFindWindowsHorizonTooShort(t *testing.T) {
    rooms := testInventory()
    windows, err := FindWindows(rooms, NewSnapshot(nil),
        date(2026, 6, 1), 7,
        map[model.RoomCategory]int{model.CategoryStandard: 1},
        date(2026, 6, 5))
    if err != nil {
        t.Fatalf("FindWindows: %v", err)
    }
    if len(windows) != 0 {
        t.Fatalf("expected no windows, got %v", windowStarts(windows))
    }
}

func TestFindWindowsValidation(t *testing.T) {
    rooms := testInventory()
    if _, err := FindWindows(rooms, NewSnapshot(nil), date(2026, 6, 1), 0, map[model.RoomCategory]int{model.CategoryStandard: 1}, date(2026, 7, 1)); !errors.Is(err, ErrInvalidRange) {
        t.Fatalf("zero duration: got %v", err)
    }
    if _, err := FindWindows(rooms, NewSnapshot(nil), date(2026, 6, 1), 3, map[model.RoomCategory]int{}, date(2026, 7, 1)); !errors.Is(err, ErrEmptyQuota) {
        t.Fatalf("empty quota: got %v", err)
    }
}

func TestFindWindowsTotal(t *testing.T) {
    rooms := testInventory()
    // Bookings leave fewer than 7 rooms free on Jul 2-4 only.
    snap := NewSnapshot([]model.Booking{
        {ID: 1, RoomID: 4, StartsOn: date(2026, 7, 2), EndsOn: date(2026, 7, 4)},
        {ID: 2, RoomID: 5, StartsOn: date(2026, 7, 2), EndsOn: date(2026, 7, 4)},
    })

    windows, err := FindWindowsTotal(rooms, snap, date(2026, 7, 1), 2, 7, date(2026, 7, 8))
    if err != nil {
        t.Fatalf("FindWindowsTotal: %v", err)
    }
    // Windows of 2 nights needing 7 of the 8 rooms: starts on Jul 1,
    // 2 and 3 collide with the two parallel bookings; Jul 4 onward is
    // clear up to the Jul 8 horizon (last start Jul 6).
    want := []time.Time{date(2026, 7, 4), date(2026, 7, 5), date(2026, 7, 6)}
    got := windowStarts(windows)
    if len(got) != len(want) {
        t.Fatalf("window starts = %v, want %v", got, want)
    }
    for i := range want {
        if !got[i].Equal(want[i]) {
            t.Fatalf("window %d starts %v, want %v", i, got[i], want[i])
        }
        if windows[i].Satisfied[TotalQuotaKey] != 7 {
            t.Fatalf("total quota not echoed: %v", windows[i].Satisfied)
        }
    }

    if _, err := FindWindowsTotal(rooms, snap, date(2026, 7, 1), 2, 0, date(2026, 7, 8)); !errors.Is(err, ErrEmptyQuota) {
        t.Fatalf("zero total: got %v", err)
    }
}
