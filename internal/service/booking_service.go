package service

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/availability"
    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// ErrRoomUnavailable is returned when an individual booking is
// requested for a room that already has an overlapping booking.
var ErrRoomUnavailable = errors.New("room unavailable for the requested range")

// ErrRoomInactive is returned when booking a room that has been taken
// out of service.
var ErrRoomInactive = errors.New("room is inactive")

// BookingService creates and cancels individual guest bookings. It
// shares the exclusion domain with blocks: the overlap check inside
// the booking transaction sees block-owned bookings exactly like
// individual ones.
type BookingService struct {
    Rooms    *repository.RoomRepo
    Bookings *repository.BookingRepo
}

// NewBookingService constructs a BookingService. All dependencies
// must be non-nil.
func NewBookingService(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *BookingService {
    if rooms == nil || bookings == nil {
        panic("nil repository passed to NewBookingService")
    }
    return &BookingService{Rooms: rooms, Bookings: bookings}
}

// Create books a room for a guest over [startsOn, endsOn). The room
// row is locked before the overlap check so two concurrent bookings
// of the same room serialize; the loser sees the winner's booking and
// fails with ErrRoomUnavailable instead of double-booking.
func (s *BookingService) Create(ctx context.Context, roomID uint64, guestName string, startsOn, endsOn time.Time) (*model.Booking, error) {
    if !endsOn.After(startsOn) {
        return nil, availability.ErrInvalidRange
    }
    tx, err := s.Bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    room, err := s.Rooms.LockByIDTx(ctx, tx, roomID)
    if err != nil {
        return nil, mapTxErr(err)
    }
    if !room.IsActive {
        return nil, ErrRoomInactive
    }
    overlapping, err := s.Bookings.ListOverlappingForRoomTx(ctx, tx, roomID, startsOn, endsOn)
    if err != nil {
        return nil, mapTxErr(err)
    }
    if len(overlapping) > 0 {
        return nil, ErrRoomUnavailable
    }

    b := &model.Booking{
        RoomID:    roomID,
        GuestName: guestName,
        StartsOn:  startsOn,
        EndsOn:    endsOn,
    }
    if err := s.Bookings.CreateTx(ctx, tx, b); err != nil {
        return nil, mapTxErr(err)
    }
    if err := s.Rooms.UpdateStatusTx(ctx, tx, []uint64{roomID}, model.StatusOccupied); err != nil {
        return nil, mapTxErr(err)
    }
    if err := tx.Commit(); err != nil {
        return nil, mapTxErr(err)
    }
    committed = true
    return b, nil
}

// Cancel marks an individual booking cancelled and resets the room's
// display status. The row is kept for audit. Block-owned bookings
// cannot be cancelled here; they are released through their block.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64) error {
    existing, err := s.Bookings.GetByID(ctx, bookingID)
    if err != nil {
        return err
    }
    if existing.BlockID != nil {
        return repository.ErrForbidden
    }
    tx, err := s.Bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    roomID, err := s.Bookings.CancelTx(ctx, tx, bookingID)
    if err != nil {
        return mapTxErr(err)
    }
    if err := s.Rooms.UpdateStatusTx(ctx, tx, []uint64{roomID}, model.StatusFree); err != nil {
        return mapTxErr(err)
    }
    if err := tx.Commit(); err != nil {
        return mapTxErr(err)
    }
    committed = true
    return nil
}
