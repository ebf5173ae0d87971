// Package service implements the business operations of the booking
// engine on top of the repository layer. It owns every transaction
// boundary: the check-then-act sequences (read free rooms, decide,
// write bookings) run inside a single transaction with the relevant
// rows locked, so concurrent commits can never double-book a room.
package service

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "time"

    "github.com/go-sql-driver/mysql"
    "github.com/google/uuid"

    "github.com/iliyamo/hotel-room-reservation/internal/availability"
    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// ErrAlreadyCommitted is returned when committing a block that has
// already been committed. A block is committed exactly once; callers
// hitting this guard are misusing the lifecycle and the occurrence is
// logged as such.
var ErrAlreadyCommitted = errors.New("block already committed")

// ErrNotCommitted is returned when releasing a block that is not
// currently committed.
var ErrNotCommitted = errors.New("block not committed")

// ErrTxConflict is returned when the database detects a conflicting
// concurrent write (deadlock or lock wait timeout). The operation did
// not take effect; callers should retry the whole call.
var ErrTxConflict = errors.New("concurrent write conflict, retry")

// BlockService drives the block lifecycle: draft creation, the atomic
// commit that allocates and books rooms, release, and the horizon
// searches. All methods take and return plain data; HTTP concerns
// stay in the handler layer.
type BlockService struct {
    Blocks   *repository.BlockRepo
    Rooms    *repository.RoomRepo
    Bookings *repository.BookingRepo
}

// NewBlockService constructs a BlockService. All dependencies must be
// non-nil.
func NewBlockService(blocks *repository.BlockRepo, rooms *repository.RoomRepo, bookings *repository.BookingRepo) *BlockService {
    if blocks == nil || rooms == nil || bookings == nil {
        panic("nil repository passed to NewBlockService")
    }
    return &BlockService{Blocks: blocks, Rooms: rooms, Bookings: bookings}
}

// CreateBlock validates and persists a draft block. The range must be
// non-empty and the quota must request at least one room. A fresh
// UUID reference is assigned for organizers to quote.
func (s *BlockService) CreateBlock(ctx context.Context, name string, startsOn, endsOn time.Time, qtyStandard, qtyPremium, qtySuite int) (*model.Block, error) {
    if !endsOn.After(startsOn) {
        return nil, availability.ErrInvalidRange
    }
    if qtyStandard < 0 || qtyPremium < 0 || qtySuite < 0 {
        return nil, availability.ErrNegativeQuota
    }
    if qtyStandard+qtyPremium+qtySuite == 0 {
        return nil, availability.ErrEmptyQuota
    }
    b := &model.Block{
        Reference:   uuid.NewString(),
        Name:        name,
        StartsOn:    startsOn,
        EndsOn:      endsOn,
        QtyStandard: qtyStandard,
        QtyPremium:  qtyPremium,
        QtySuite:    qtySuite,
    }
    if err := s.Blocks.Create(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// CommitBlock allocates rooms for a draft block and books them, all
// in one transaction. Steps: lock the block row, guard the lifecycle,
// lock the active room inventory, snapshot the overlapping bookings,
// run the allocator, then insert one booking per selected room and
// mark the block committed. On *availability.InsufficientError the
// transaction rolls back and zero new rows persist. Database-level
// write conflicts surface as ErrTxConflict.
func (s *BlockService) CommitBlock(ctx context.Context, blockID uint64) (*model.Block, []model.Room, error) {
    tx, err := s.Blocks.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    block, err := s.Blocks.GetByIDForUpdateTx(ctx, tx, blockID)
    if err != nil {
        return nil, nil, mapTxErr(err)
    }
    if block.Committed {
        log.Printf("block-service: commit rejected, block %d already committed", blockID)
        return nil, nil, ErrAlreadyCommitted
    }
    if !block.EndsOn.After(block.StartsOn) {
        return nil, nil, availability.ErrInvalidRange
    }
    if block.TotalQuota() == 0 {
        return nil, nil, availability.ErrEmptyQuota
    }

    // Row locks on the inventory serialize concurrent commits: the
    // loser waits here and then allocates against the winner's rows.
    rooms, err := s.Rooms.ListActiveForUpdateTx(ctx, tx)
    if err != nil {
        return nil, nil, mapTxErr(err)
    }
    overlapping, err := s.Bookings.ListOverlappingTx(ctx, tx, block.StartsOn, block.EndsOn)
    if err != nil {
        return nil, nil, mapTxErr(err)
    }
    snap := availability.NewSnapshot(overlapping)
    byCat, err := availability.FreeByCategory(rooms, snap, block.StartsOn, block.EndsOn)
    if err != nil {
        return nil, nil, err
    }
    selected, err := availability.Allocate(byCat, block.Quota())
    if err != nil {
        return nil, nil, err
    }

    records := make([]model.Booking, 0, len(selected))
    roomIDs := make([]uint64, 0, len(selected))
    for _, room := range selected {
        records = append(records, model.Booking{
            RoomID:   room.ID,
            StartsOn: block.StartsOn,
            EndsOn:   block.EndsOn,
            BlockID:  &block.ID,
        })
        roomIDs = append(roomIDs, room.ID)
    }
    if err := s.Bookings.CreateBulkTx(ctx, tx, records); err != nil {
        return nil, nil, mapTxErr(err)
    }
    if err := s.Blocks.MarkCommittedTx(ctx, tx, block.ID, roomIDs); err != nil {
        return nil, nil, mapTxErr(err)
    }
    if err := s.Rooms.UpdateStatusTx(ctx, tx, roomIDs, model.StatusOccupied); err != nil {
        return nil, nil, mapTxErr(err)
    }
    if err := tx.Commit(); err != nil {
        return nil, nil, mapTxErr(err)
    }
    committed = true

    block.Committed = true
    block.RoomIDs = roomIDs
    publishBlockEvent(ctx, block, selected, true)
    return block, selected, nil
}

// ReleaseBlock cancels every booking owned by a committed block in
// one transaction, clears the committed flag and returns the freed
// room ids. The bookings stay on record as cancelled for audit.
// Releasing a draft block fails with ErrNotCommitted.
func (s *BlockService) ReleaseBlock(ctx context.Context, blockID uint64) (*model.Block, []uint64, error) {
    tx, err := s.Blocks.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    block, err := s.Blocks.GetByIDForUpdateTx(ctx, tx, blockID)
    if err != nil {
        return nil, nil, mapTxErr(err)
    }
    if !block.Committed {
        log.Printf("block-service: release rejected, block %d not committed", blockID)
        return nil, nil, ErrNotCommitted
    }
    roomIDs, err := s.Bookings.CancelByBlockTx(ctx, tx, block.ID)
    if err != nil {
        return nil, nil, mapTxErr(err)
    }
    if err := s.Blocks.MarkReleasedTx(ctx, tx, block.ID); err != nil {
        return nil, nil, mapTxErr(err)
    }
    // Display cache only: other bookings may still occupy a room, but
    // availability never reads this field.
    if err := s.Rooms.UpdateStatusTx(ctx, tx, roomIDs, model.StatusFree); err != nil {
        return nil, nil, mapTxErr(err)
    }
    if err := tx.Commit(); err != nil {
        return nil, nil, mapTxErr(err)
    }
    committed = true

    block.Committed = false
    block.RoomIDs = nil
    publishBlockEvent(ctx, block, nil, false)
    return block, roomIDs, nil
}

// FreeRooms answers the availability question for an exact range:
// every active room with no overlapping booking, optionally filtered
// by category. Read-only; uses the pooled connection, no locks.
func (s *BlockService) FreeRooms(ctx context.Context, from, to time.Time, category *model.RoomCategory) ([]model.Room, error) {
    if !to.After(from) {
        return nil, availability.ErrInvalidRange
    }
    rooms, err := s.Rooms.ListActive(ctx)
    if err != nil {
        return nil, err
    }
    overlapping, err := s.Bookings.ListOverlapping(ctx, from, to)
    if err != nil {
        return nil, err
    }
    return availability.FreeRooms(rooms, availability.NewSnapshot(overlapping), from, to, category)
}

// SearchWindows scans [earliestStart, horizonEnd) for every window of
// durationDays nights satisfying the per-category quota. The booking
// snapshot is fetched once for the whole horizon; the scan itself is
// pure computation. A horizon too short for a single window returns
// an empty result with a diagnostic log line, not an error.
func (s *BlockService) SearchWindows(ctx context.Context, earliestStart time.Time, durationDays int, quota map[model.RoomCategory]int, horizonEnd time.Time) ([]availability.Window, error) {
    rooms, snap, err := s.scanInputs(ctx, earliestStart, durationDays, horizonEnd)
    if err != nil {
        return nil, err
    }
    if rooms == nil {
        if err := availabilityQuotaCheck(quota); err != nil {
            return nil, err
        }
        return []availability.Window{}, nil
    }
    return availability.FindWindows(rooms, snap, earliestStart, durationDays, quota, horizonEnd)
}

// SearchWindowsTotal is SearchWindows with a single total room count
// instead of a per-category quota. It shares the snapshot fetch and
// the day-stepping scan.
func (s *BlockService) SearchWindowsTotal(ctx context.Context, earliestStart time.Time, durationDays int, total int, horizonEnd time.Time) ([]availability.Window, error) {
    rooms, snap, err := s.scanInputs(ctx, earliestStart, durationDays, horizonEnd)
    if err != nil {
        return nil, err
    }
    if rooms == nil {
        if total < 0 {
            return nil, availability.ErrNegativeQuota
        }
        if total == 0 {
            return nil, availability.ErrEmptyQuota
        }
        return []availability.Window{}, nil
    }
    return availability.FindWindowsTotal(rooms, snap, earliestStart, durationDays, total, horizonEnd)
}

// scanInputs validates the horizon and fetches the scan inputs once.
// A nil room slice with nil error signals "horizon cannot fit one
// window": callers return an empty result after validating the quota.
func (s *BlockService) scanInputs(ctx context.Context, earliestStart time.Time, durationDays int, horizonEnd time.Time) ([]model.Room, availability.Snapshot, error) {
    if durationDays <= 0 {
        return nil, nil, availability.ErrInvalidRange
    }
    if horizonEnd.Before(earliestStart.AddDate(0, 0, durationDays)) {
        log.Printf("block-service: window search horizon %s too short for %d nights from %s",
            horizonEnd.Format("2006-01-02"), durationDays, earliestStart.Format("2006-01-02"))
        return nil, nil, nil
    }
    rooms, err := s.Rooms.ListActive(ctx)
    if err != nil {
        return nil, nil, err
    }
    overlapping, err := s.Bookings.ListOverlapping(ctx, earliestStart, horizonEnd)
    if err != nil {
        return nil, nil, err
    }
    return rooms, availability.NewSnapshot(overlapping), nil
}

// availabilityQuotaCheck mirrors the allocator's quota validation for
// the empty-horizon fast path so invalid quotas fail identically on
// both paths.
func availabilityQuotaCheck(quota map[model.RoomCategory]int) error {
    total := 0
    for _, n := range quota {
        if n < 0 {
            return availability.ErrNegativeQuota
        }
        total += n
    }
    if total == 0 {
        return availability.ErrEmptyQuota
    }
    return nil
}

// mapTxErr converts MySQL concurrency failures into ErrTxConflict so
// callers can distinguish "retry the whole commit" from hard errors.
// 1213 is a deadlock, 1205 a lock wait timeout; in both cases InnoDB
// rolled the statement or transaction back and no partial state
// remains once our deferred rollback runs.
func mapTxErr(err error) error {
    if err == nil {
        return nil
    }
    var mysqlErr *mysql.MySQLError
    if errors.As(err, &mysqlErr) {
        switch mysqlErr.Number {
        case 1213, 1205:
            return ErrTxConflict
        }
    }
    if errors.Is(err, sql.ErrTxDone) {
        return ErrTxConflict
    }
    return err
}
