package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// RoomHandler exposes the admin inventory surface: creating rooms,
// listing them, flipping their active flag and deleting them. The
// display status is shown as-is; it is a dashboard cache, never an
// availability source.
type RoomHandler struct {
    Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler and panics if the dependency is nil.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
    if rooms == nil {
        panic("nil repository passed to NewRoomHandler")
    }
    return &RoomHandler{Rooms: rooms}
}

type roomResp struct {
    ID         uint64 `json:"id"`
    RoomNumber uint32 `json:"room_number"`
    Category   string `json:"category"`
    Status     string `json:"status"`
    IsActive   bool   `json:"is_active"`
}

func toRoomResp(r model.Room) roomResp {
    return roomResp{
        ID:         r.ID,
        RoomNumber: r.RoomNumber,
        Category:   string(r.Category),
        Status:     string(r.Status),
        IsActive:   r.IsActive,
    }
}

// Create handles POST /v1/rooms. The body must carry a room number
// and one of the fixed categories. New rooms start active and FREE.
func (h *RoomHandler) Create(c echo.Context) error {
    var body struct {
        RoomNumber uint32 `json:"room_number"`
        Category   string `json:"category"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RoomNumber == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number is required"})
    }
    category, ok := model.ParseCategory(body.Category)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
    }
    room := &model.Room{RoomNumber: body.RoomNumber, Category: category}
    if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
    }
    room.IsActive = true
    return c.JSON(http.StatusCreated, toRoomResp(*room))
}

// List handles GET /v1/rooms. Rooms come back in allocation order
// (category, then room number).
func (h *RoomHandler) List(c echo.Context) error {
    rooms, err := h.Rooms.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
    }
    items := make([]roomResp, 0, len(rooms))
    for _, r := range rooms {
        items = append(items, toRoomResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    room, err := h.Rooms.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toRoomResp(*room)})
}

// SetActive handles PATCH /v1/rooms/:id. Deactivating a room
// excludes it from every future allocation while keeping its booking
// history intact.
func (h *RoomHandler) SetActive(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var body struct {
        IsActive *bool `json:"is_active"`
    }
    if err := c.Bind(&body); err != nil || body.IsActive == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
    }
    if err := h.Rooms.SetActive(c.Request().Context(), id, *body.IsActive); err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": *body.IsActive})
}

// Delete handles DELETE /v1/rooms/:id. A room with non-cancelled
// future bookings cannot be deleted (409); past bookings do not block
// deletion, they keep referencing the room id.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
        return respondEngineError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
