package availability

import "github.com/iliyamo/hotel-room-reservation/internal/model"

// Allocate selects rooms satisfying a per-category quota from the
// free sets produced by FreeByCategory.  The call is all-or-nothing:
// if any category with a positive quota has fewer free rooms than
// required, it returns *InsufficientError listing every short
// category and selects nothing.  On success it picks the first
// quota[c] rooms of each category in allocation order; because the
// inputs are sorted by room number, repeated calls over the same free
// set always return the same rooms.
func Allocate(freeByCategory map[model.RoomCategory][]model.Room, quota map[model.RoomCategory]int) ([]model.Room, error) {
    if err := validateQuota(quota); err != nil {
        return nil, err
    }
    shortages := make(map[model.RoomCategory]Shortage)
    for _, c := range model.Categories {
        need := quota[c]
        if need == 0 {
            continue
        }
        if have := len(freeByCategory[c]); have < need {
            shortages[c] = Shortage{Required: need, Available: have}
        }
    }
    if len(shortages) > 0 {
        return nil, &InsufficientError{Shortages: shortages}
    }
    var selected []model.Room
    for _, c := range model.Categories {
        need := quota[c]
        if need == 0 {
            continue
        }
        selected = append(selected, freeByCategory[c][:need]...)
    }
    return selected, nil
}

// AllocateTotal selects a fixed number of rooms regardless of
// category.  The free slice must already be in the stable order
// produced by FreeRooms (category then room number), so the selection
// fills cheaper categories first and stays reproducible.  Shortages
// are reported under TotalQuotaKey.
func AllocateTotal(free []model.Room, total int) ([]model.Room, error) {
    if total < 0 {
        return nil, ErrNegativeQuota
    }
    if total == 0 {
        return nil, ErrEmptyQuota
    }
    if len(free) < total {
        return nil, &InsufficientError{Shortages: map[model.RoomCategory]Shortage{
            TotalQuotaKey: {Required: total, Available: len(free)},
        }}
    }
    return free[:total], nil
}
