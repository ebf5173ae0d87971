// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records block lifecycle events.
package queue

// BlockEvent is published when a block is successfully committed or
// released. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database. Action distinguishes COMMITTED from RELEASED.
type BlockEvent struct {
    BlockID     uint64   `json:"block_id"`
    Reference   string   `json:"reference"`
    Name        string   `json:"name"`
    Action      string   `json:"action"` // COMMITTED | RELEASED
    StartsOn    string   `json:"starts_on"`
    EndsOn      string   `json:"ends_on"`
    RoomNumbers []uint32 `json:"rooms"`
    OccurredAt  string   `json:"occurred_at"`
}

// Actions recorded in BlockEvent.
const (
    ActionCommitted = "COMMITTED"
    ActionReleased  = "RELEASED"
)
