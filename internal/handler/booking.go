package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
    "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// BookingHandler exposes individual guest bookings. Creation and
// cancellation run through the BookingService so every write shares
// the transactional overlap check with the block engine.
type BookingHandler struct {
    Service  *service.BookingService
    Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. All dependencies must be non-nil.
func NewBookingHandler(svc *service.BookingService, bookings *repository.BookingRepo) *BookingHandler {
    if svc == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Service: svc, Bookings: bookings}
}

type bookingResp struct {
    ID        uint64  `json:"id"`
    RoomID    uint64  `json:"room_id"`
    GuestName string  `json:"guest_name,omitempty"`
    StartsOn  string  `json:"starts_on"`
    EndsOn    string  `json:"ends_on"`
    Cancelled bool    `json:"cancelled"`
    BlockID   *uint64 `json:"block_id,omitempty"`
}

func toBookingResp(b model.Booking) bookingResp {
    return bookingResp{
        ID:        b.ID,
        RoomID:    b.RoomID,
        GuestName: b.GuestName,
        StartsOn:  formatDate(b.StartsOn),
        EndsOn:    formatDate(b.EndsOn),
        Cancelled: b.Cancelled,
        BlockID:   b.BlockID,
    }
}

// Create handles POST /v1/bookings. The body carries the room id, the
// guest name and a half-open date range (ends_on is the checkout
// date). An overlapping booking on the room yields 409.
func (h *BookingHandler) Create(c echo.Context) error {
    var body struct {
        RoomID    uint64 `json:"room_id"`
        GuestName string `json:"guest_name"`
        StartsOn  string `json:"starts_on"`
        EndsOn    string `json:"ends_on"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RoomID == 0 || body.GuestName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and guest_name are required"})
    }
    startsOn, err := parseDate(body.StartsOn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_on"})
    }
    endsOn, err := parseDate(body.EndsOn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_on"})
    }
    booking, err := h.Service.Create(c.Request().Context(), body.RoomID, body.GuestName, startsOn, endsOn)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusCreated, toBookingResp(*booking))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    booking, err := h.Bookings.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(*booking)})
}

// ListByRoom handles GET /v1/rooms/:id/bookings. Cancelled bookings
// are included so the room's audit trail stays visible.
func (h *BookingHandler) ListByRoom(c echo.Context) error {
    roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || roomID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    bookings, err := h.Bookings.ListByRoom(c.Request().Context(), roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    items := make([]bookingResp, 0, len(bookings))
    for _, b := range bookings {
        items = append(items, toBookingResp(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Cancel handles DELETE /v1/bookings/:id. The booking is marked
// cancelled, not deleted; bookings owned by a block are refused here
// and must be released through the block.
func (h *BookingHandler) Cancel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Service.Cancel(c.Request().Context(), id); err != nil {
        return respondEngineError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
