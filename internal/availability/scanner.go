package availability

import (
    "errors"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// Window is one bookable slot found by a horizon scan: a stay of the
// requested duration starting on Start, during which the whole quota
// can be allocated.  Satisfied echoes the quota that was proven
// allocatable (keyed by TotalQuotaKey in total-count mode).
type Window struct {
    Start     time.Time                  `json:"start"`
    End       time.Time                  `json:"end"`
    Satisfied map[model.RoomCategory]int `json:"satisfied"`
}

// FindWindows walks the horizon day by day and returns every window
// of durationDays nights, starting no earlier than earliestStart and
// ending no later than horizonEnd, for which the per-category quota
// is fully satisfiable.  The whole scan runs against the single
// prefetched snapshot; no queries happen inside the loop.  Windows
// are returned in ascending start order.  A horizon too short to fit
// one window yields an empty slice, not an error; "nothing found"
// is a normal answer.
func FindWindows(rooms []model.Room, snap Snapshot, earliestStart time.Time, durationDays int, quota map[model.RoomCategory]int, horizonEnd time.Time) ([]Window, error) {
    if durationDays <= 0 {
        return nil, ErrInvalidRange
    }
    if err := validateQuota(quota); err != nil {
        return nil, err
    }
    windows := []Window{}
    lastStart := horizonEnd.AddDate(0, 0, -durationDays)
    for d := earliestStart; !d.After(lastStart); d = d.AddDate(0, 0, 1) {
        end := d.AddDate(0, 0, durationDays)
        byCat, err := FreeByCategory(rooms, snap, d, end)
        if err != nil {
            return nil, err
        }
        if _, err := Allocate(byCat, quota); err != nil {
            var ins *InsufficientError
            if errors.As(err, &ins) {
                continue
            }
            return nil, err
        }
        windows = append(windows, Window{Start: d, End: end, Satisfied: copyQuota(quota)})
    }
    return windows, nil
}

// FindWindowsTotal is the total-count variant of FindWindows: the
// quota is a single room count over the union of all categories.  It
// shares the same day-stepping loop and the same snapshot.
func FindWindowsTotal(rooms []model.Room, snap Snapshot, earliestStart time.Time, durationDays int, total int, horizonEnd time.Time) ([]Window, error) {
    if durationDays <= 0 {
        return nil, ErrInvalidRange
    }
    if total <= 0 {
        if total < 0 {
            return nil, ErrNegativeQuota
        }
        return nil, ErrEmptyQuota
    }
    windows := []Window{}
    lastStart := horizonEnd.AddDate(0, 0, -durationDays)
    for d := earliestStart; !d.After(lastStart); d = d.AddDate(0, 0, 1) {
        end := d.AddDate(0, 0, durationDays)
        free, err := FreeRooms(rooms, snap, d, end, nil)
        if err != nil {
            return nil, err
        }
        if _, err := AllocateTotal(free, total); err != nil {
            var ins *InsufficientError
            if errors.As(err, &ins) {
                continue
            }
            return nil, err
        }
        windows = append(windows, Window{
            Start:     d,
            End:       end,
            Satisfied: map[model.RoomCategory]int{TotalQuotaKey: total},
        })
    }
    return windows, nil
}

func copyQuota(quota map[model.RoomCategory]int) map[model.RoomCategory]int {
    out := make(map[model.RoomCategory]int, len(quota))
    for c, n := range quota {
        if n > 0 {
            out[c] = n
        }
    }
    return out
}
