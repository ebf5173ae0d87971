package repository // repository defines data access for rooms

import (
    "context"      // context allows query cancellation and timeouts
    "database/sql" // sql provides DB primitives
    "errors"       // errors for sentinel definitions

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides methods to work with rooms in the database.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
    return &RoomRepo{db: db}
}

// DB exposes the underlying handle so that callers coordinating a
// multi-repository transaction can call BeginTx on it.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a single room record. On success the room's ID is populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
    const q = `INSERT INTO rooms (room_number, category, status)
               VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, room.RoomNumber, room.Category, model.StatusFree)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    room.ID = uint64(id)
    room.Status = model.StatusFree
    return nil
}

// GetByID retrieves a room by its id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT id, room_number, category, status, is_active, created_at, updated_at
               FROM rooms WHERE id = ?`
    var room model.Room
    err := r.db.QueryRowContext(ctx, q, id).
        Scan(&room.ID, &room.RoomNumber, &room.Category, &room.Status, &room.IsActive, &room.CreatedAt, &room.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &room, nil
}

// ListAll retrieves every room ordered by category then room number.
// The ordering matches the allocation order so listings line up with
// what the allocator would pick first.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT id, room_number, category, status, is_active, created_at, updated_at
               FROM rooms
               ORDER BY FIELD(category, 'STANDARD', 'PREMIUM', 'SUITE'), room_number`
    return r.queryRooms(ctx, q)
}

// ListActive retrieves all active rooms in allocation order.  This is
// the inventory every availability computation starts from.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT id, room_number, category, status, is_active, created_at, updated_at
               FROM rooms
               WHERE is_active = 1
               ORDER BY FIELD(category, 'STANDARD', 'PREMIUM', 'SUITE'), room_number`
    return r.queryRooms(ctx, q)
}

// ListActiveForUpdateTx retrieves all active rooms in allocation order
// while taking row locks (SELECT ... FOR UPDATE) inside the provided
// transaction.  Locking the inventory rows serializes concurrent block
// commits over the same rooms: the second committer blocks until the
// first transaction finishes and then sees its bookings.
func (r *RoomRepo) ListActiveForUpdateTx(ctx context.Context, tx *sql.Tx) ([]model.Room, error) {
    const q = `SELECT id, room_number, category, status, is_active, created_at, updated_at
               FROM rooms
               WHERE is_active = 1
               ORDER BY FIELD(category, 'STANDARD', 'PREMIUM', 'SUITE'), room_number
               FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    return scanRooms(rows)
}

// LockByIDTx locks one room row FOR UPDATE and returns it.  Used by
// the individual booking path so two concurrent bookings of the same
// room serialize on the row lock.
func (r *RoomRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
    const q = `SELECT id, room_number, category, status, is_active, created_at, updated_at
               FROM rooms WHERE id = ? FOR UPDATE`
    var room model.Room
    err := tx.QueryRowContext(ctx, q, id).
        Scan(&room.ID, &room.RoomNumber, &room.Category, &room.Status, &room.IsActive, &room.CreatedAt, &room.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &room, nil
}

// UpdateStatusTx sets the display status of the given rooms inside a
// transaction.  The status is a dashboard cache only; availability is
// always derived from bookings, so this update never gates a commit.
func (r *RoomRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, roomIDs []uint64, status model.RoomStatus) error {
    if len(roomIDs) == 0 {
        return nil
    }
    query := `UPDATE rooms SET status = ? WHERE id IN (`
    args := make([]interface{}, 0, len(roomIDs)+1)
    args = append(args, status)
    for i, id := range roomIDs {
        if i > 0 {
            query += ","
        }
        query += "?"
        args = append(args, id)
    }
    query += ")"
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// SetActive flips a room's is_active flag.  Deactivating a room
// removes it from future allocation without touching its history.
func (r *RoomRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    const q = `UPDATE rooms SET is_active = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, active, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrRoomNotFound
    }
    return nil
}

// Delete removes a room after verifying it has no non-cancelled
// bookings ending in the future.  When such bookings exist it returns
// ErrConflict; past bookings keep their weak room reference and do
// not block deletion.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    var n int
    const check = `SELECT COUNT(*) FROM bookings
                   WHERE room_id = ? AND cancelled = 0 AND ends_on > UTC_DATE()`
    if err := tx.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrRoomNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// queryRooms runs a room SELECT against the pool and scans the rows.
func (r *RoomRepo) queryRooms(ctx context.Context, query string) ([]model.Room, error) {
    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    return scanRooms(rows)
}

// scanRooms drains a room result set, closing it when done.
func scanRooms(rows *sql.Rows) ([]model.Room, error) {
    defer rows.Close()
    var result []model.Room
    for rows.Next() {
        var room model.Room
        if err := rows.Scan(
            &room.ID, &room.RoomNumber, &room.Category, &room.Status,
            &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, room)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
