package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
    "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// BlockHandler exposes the convention block lifecycle: draft
// creation, commit (allocate and book rooms atomically), release, and
// read access. Commit and release delegate to the BlockService which
// owns the transaction boundary.
type BlockHandler struct {
    Service *service.BlockService
    Blocks  *repository.BlockRepo
}

// NewBlockHandler constructs a BlockHandler. All dependencies must be non-nil.
func NewBlockHandler(svc *service.BlockService, blocks *repository.BlockRepo) *BlockHandler {
    if svc == nil || blocks == nil {
        panic("nil dependency passed to NewBlockHandler")
    }
    return &BlockHandler{Service: svc, Blocks: blocks}
}

type blockResp struct {
    ID          uint64   `json:"id"`
    Reference   string   `json:"reference"`
    Name        string   `json:"name"`
    StartsOn    string   `json:"starts_on"`
    EndsOn      string   `json:"ends_on"`
    QtyStandard int      `json:"qty_standard"`
    QtyPremium  int      `json:"qty_premium"`
    QtySuite    int      `json:"qty_suite"`
    Committed   bool     `json:"committed"`
    RoomIDs     []uint64 `json:"room_ids,omitempty"`
}

func toBlockResp(b model.Block) blockResp {
    return blockResp{
        ID:          b.ID,
        Reference:   b.Reference,
        Name:        b.Name,
        StartsOn:    formatDate(b.StartsOn),
        EndsOn:      formatDate(b.EndsOn),
        QtyStandard: b.QtyStandard,
        QtyPremium:  b.QtyPremium,
        QtySuite:    b.QtySuite,
        Committed:   b.Committed,
        RoomIDs:     b.RoomIDs,
    }
}

// Create handles POST /v1/blocks. The body carries the organizer
// name, the half-open date range and the per-category quota. The
// block starts as an uncommitted draft; no rooms are touched yet.
func (h *BlockHandler) Create(c echo.Context) error {
    var body struct {
        Name        string `json:"name"`
        StartsOn    string `json:"starts_on"`
        EndsOn      string `json:"ends_on"`
        QtyStandard int    `json:"qty_standard"`
        QtyPremium  int    `json:"qty_premium"`
        QtySuite    int    `json:"qty_suite"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    startsOn, err := parseDate(body.StartsOn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_on"})
    }
    endsOn, err := parseDate(body.EndsOn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_on"})
    }
    block, err := h.Service.CreateBlock(c.Request().Context(), body.Name, startsOn, endsOn,
        body.QtyStandard, body.QtyPremium, body.QtySuite)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusCreated, toBlockResp(*block))
}

// List handles GET /v1/blocks, newest first.
func (h *BlockHandler) List(c echo.Context) error {
    blocks, err := h.Blocks.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blocks"})
    }
    items := make([]blockResp, 0, len(blocks))
    for _, b := range blocks {
        items = append(items, toBlockResp(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/blocks/:id. Committed blocks include the room
// ids they own.
func (h *BlockHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
    }
    block, err := h.Blocks.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toBlockResp(*block)})
}

// Commit handles POST /v1/blocks/:id/commit. On success every
// selected room is booked for the block's range in one transaction
// and the response lists the selection. A quota that cannot be met
// returns 409 with per-category shortages and persists nothing; a
// concurrent-write conflict returns a retryable 409.
func (h *BlockHandler) Commit(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
    }
    block, rooms, err := h.Service.CommitBlock(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    selected := make([]roomResp, 0, len(rooms))
    for _, r := range rooms {
        selected = append(selected, toRoomResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "item":  toBlockResp(*block),
        "rooms": selected,
    })
}

// Release handles POST /v1/blocks/:id/release. All of the block's
// bookings are cancelled (kept for audit) and its rooms return to
// availability for the range. Releasing a draft block returns 409.
func (h *BlockHandler) Release(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
    }
    block, roomIDs, err := h.Service.ReleaseBlock(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "item":     toBlockResp(*block),
        "released": roomIDs,
    })
}
