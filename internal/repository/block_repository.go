package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// ErrBlockNotFound is returned when a block lookup yields no rows.
var ErrBlockNotFound = errors.New("block not found")

// BlockRepo provides CRUD operations for convention blocks and the
// block_rooms rows recording which rooms a committed block owns.
// Commit and release mutate blocks only inside the same transaction
// that mutates their bookings, so the committed flag can never drift
// from the interval records.
type BlockRepo struct {
    db *sql.DB
}

// NewBlockRepo returns a new BlockRepo bound to the given database.
func NewBlockRepo(db *sql.DB) *BlockRepo { return &BlockRepo{db: db} }

// DB exposes the underlying handle for callers that begin transactions.
func (r *BlockRepo) DB() *sql.DB { return r.db }

const blockColumns = `id, reference, name, starts_on, ends_on, qty_standard, qty_premium, qty_suite, committed, created_at, updated_at`

// Create inserts a draft block.  The caller supplies the public
// reference (a UUID) and validated dates and quotas; the generated ID
// is populated on success.
func (r *BlockRepo) Create(ctx context.Context, b *model.Block) error {
    const q = `INSERT INTO blocks (reference, name, starts_on, ends_on, qty_standard, qty_premium, qty_suite)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.Reference, b.Name, dateArg(b.StartsOn), dateArg(b.EndsOn),
        b.QtyStandard, b.QtyPremium, b.QtySuite)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// GetByID retrieves a block and, when committed, the room ids it owns.
func (r *BlockRepo) GetByID(ctx context.Context, id uint64) (*model.Block, error) {
    const q = `SELECT ` + blockColumns + ` FROM blocks WHERE id = ?`
    b, err := r.scanBlockRow(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        return nil, err
    }
    if b.Committed {
        if b.RoomIDs, err = r.roomIDs(ctx, b.ID); err != nil {
            return nil, err
        }
    }
    return b, nil
}

// GetByIDForUpdateTx loads a block FOR UPDATE inside a transaction.
// Commit and release take this lock first so the block's lifecycle
// transitions serialize: a second commit of the same block blocks on
// the row lock and then sees committed=1.
func (r *BlockRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Block, error) {
    const q = `SELECT ` + blockColumns + ` FROM blocks WHERE id = ? FOR UPDATE`
    return r.scanBlockRow(tx.QueryRowContext(ctx, q, id))
}

// List returns all blocks, newest first.
func (r *BlockRepo) List(ctx context.Context) ([]model.Block, error) {
    const q = `SELECT ` + blockColumns + ` FROM blocks ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var result []model.Block
    for rows.Next() {
        var b model.Block
        if err := rows.Scan(
            &b.ID, &b.Reference, &b.Name, &b.StartsOn, &b.EndsOn,
            &b.QtyStandard, &b.QtyPremium, &b.QtySuite, &b.Committed,
            &b.CreatedAt, &b.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// MarkCommittedTx flips the block to committed and records the rooms
// it owns, within the provided transaction.  The caller must have
// inserted the block's bookings in the same transaction.
func (r *BlockRepo) MarkCommittedTx(ctx context.Context, tx *sql.Tx, blockID uint64, roomIDs []uint64) error {
    if _, err := tx.ExecContext(ctx, `UPDATE blocks SET committed = 1 WHERE id = ?`, blockID); err != nil {
        return err
    }
    if len(roomIDs) == 0 {
        return nil
    }
    query := `INSERT INTO block_rooms (block_id, room_id) VALUES `
    args := make([]interface{}, 0, len(roomIDs)*2)
    for i, rid := range roomIDs {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, blockID, rid)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// MarkReleasedTx clears the committed flag and the block's room
// ownership within the provided transaction.  The bookings themselves
// are cancelled (not deleted) by the caller through the BookingRepo.
func (r *BlockRepo) MarkReleasedTx(ctx context.Context, tx *sql.Tx, blockID uint64) error {
    if _, err := tx.ExecContext(ctx, `UPDATE blocks SET committed = 0 WHERE id = ?`, blockID); err != nil {
        return err
    }
    _, err := tx.ExecContext(ctx, `DELETE FROM block_rooms WHERE block_id = ?`, blockID)
    return err
}

// roomIDs loads the rooms a committed block owns, in insertion order.
func (r *BlockRepo) roomIDs(ctx context.Context, blockID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT room_id FROM block_rooms WHERE block_id = ? ORDER BY room_id`, blockID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}

// scanBlockRow scans one block row, mapping missing rows to
// ErrBlockNotFound.
func (r *BlockRepo) scanBlockRow(row *sql.Row) (*model.Block, error) {
    var b model.Block
    err := row.Scan(
        &b.ID, &b.Reference, &b.Name, &b.StartsOn, &b.EndsOn,
        &b.QtyStandard, &b.QtyPremium, &b.QtySuite, &b.Committed,
        &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBlockNotFound
        }
        return nil, err
    }
    return &b, nil
}
