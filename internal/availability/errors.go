// Package availability implements the room availability and
// block-allocation engine: computing which rooms are free for a date
// range, selecting rooms against a quota, and scanning a horizon for
// bookable windows.  Everything in this package is a pure function
// over plain data; persistence and transactions live in the
// repository and service layers.
package availability

import (
    "errors"
    "fmt"
    "sort"
    "strings"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// ErrInvalidRange is returned when a requested date range does not
// satisfy start < end.
var ErrInvalidRange = errors.New("invalid date range: end must be after start")

// ErrEmptyQuota is returned when every requested room count is zero.
var ErrEmptyQuota = errors.New("quota must request at least one room")

// ErrNegativeQuota is returned when a quota contains a negative count.
var ErrNegativeQuota = errors.New("quota counts must be non-negative")

// TotalQuotaKey is the pseudo-category under which total-count
// allocation reports its shortage.  It never collides with a real
// room category.
const TotalQuotaKey model.RoomCategory = "TOTAL"

// Shortage describes, for one category, how many rooms were required
// versus how many were actually free.
type Shortage struct {
    Required  int `json:"required"`
    Available int `json:"available"`
}

// InsufficientError reports that a quota could not be satisfied.  It
// carries one Shortage per under-supplied category so callers can
// surface exactly what was missing.  No partial allocation accompanies
// this error: when it is returned, nothing was selected.
type InsufficientError struct {
    Shortages map[model.RoomCategory]Shortage
}

// Error renders the shortages in a stable category order.
func (e *InsufficientError) Error() string {
    cats := make([]string, 0, len(e.Shortages))
    for c := range e.Shortages {
        cats = append(cats, string(c))
    }
    sort.Strings(cats)
    parts := make([]string, 0, len(cats))
    for _, c := range cats {
        s := e.Shortages[model.RoomCategory(c)]
        parts = append(parts, fmt.Sprintf("%s required=%d available=%d", c, s.Required, s.Available))
    }
    return "insufficient rooms: " + strings.Join(parts, ", ")
}

// validateQuota rejects negative counts and all-zero quotas.
func validateQuota(quota map[model.RoomCategory]int) error {
    total := 0
    for _, n := range quota {
        if n < 0 {
            return ErrNegativeQuota
        }
        total += n
    }
    if total == 0 {
        return ErrEmptyQuota
    }
    return nil
}
