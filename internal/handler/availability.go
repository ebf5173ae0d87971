package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing query parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// AvailabilityHandler exposes the read side of the engine: the free
// set for an exact range and the horizon window search. Both answer
// from a single snapshot query, so these endpoints are cheap enough
// to sit behind the response cache.
type AvailabilityHandler struct {
    Service *service.BlockService
}

// NewAvailabilityHandler constructs an AvailabilityHandler and panics
// if the dependency is nil.
func NewAvailabilityHandler(svc *service.BlockService) *AvailabilityHandler {
    if svc == nil {
        panic("nil service passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Service: svc}
}

// FreeRooms handles GET /v1/availability/rooms?from=&to=&category=.
// It returns every active room free for the half-open range [from,
// to), in allocation order. The optional category narrows the answer
// to one room class.
func (h *AvailabilityHandler) FreeRooms(c echo.Context) error {
    from, err := parseDate(c.QueryParam("from"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
    }
    to, err := parseDate(c.QueryParam("to"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
    }
    var category *model.RoomCategory
    if raw := c.QueryParam("category"); raw != "" {
        cat, ok := model.ParseCategory(raw)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
        }
        category = &cat
    }
    rooms, err := h.Service.FreeRooms(c.Request().Context(), from, to, category)
    if err != nil {
        return respondEngineError(c, err)
    }
    items := make([]roomResp, 0, len(rooms))
    for _, r := range rooms {
        items = append(items, toRoomResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "from":  formatDate(from),
        "to":    formatDate(to),
        "items": items,
    })
}

// Windows handles GET /v1/availability/windows.  Query parameters:
// start (earliest start date), nights (stay duration), until (horizon
// end date), and either a per-category quota (standard=&premium=&
// suite=) or total= for category-agnostic search. The response lists
// every window in which the quota is satisfiable, ascending by start;
// an empty list is the normal "nothing found" answer.
func (h *AvailabilityHandler) Windows(c echo.Context) error {
    start, err := parseDate(c.QueryParam("start"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start"})
    }
    until, err := parseDate(c.QueryParam("until"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid until"})
    }
    nights, err := strconv.Atoi(c.QueryParam("nights"))
    if err != nil || nights <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "nights must be a positive integer"})
    }

    ctx := c.Request().Context()
    if rawTotal := c.QueryParam("total"); rawTotal != "" {
        total, err := strconv.Atoi(rawTotal)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid total"})
        }
        windows, err := h.Service.SearchWindowsTotal(ctx, start, nights, total, until)
        if err != nil {
            return respondEngineError(c, err)
        }
        return c.JSON(http.StatusOK, echo.Map{"items": windows})
    }

    quota := map[model.RoomCategory]int{}
    for param, cat := range map[string]model.RoomCategory{
        "standard": model.CategoryStandard,
        "premium":  model.CategoryPremium,
        "suite":    model.CategorySuite,
    } {
        raw := c.QueryParam(param)
        if raw == "" {
            continue
        }
        n, err := strconv.Atoi(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + param})
        }
        quota[cat] = n
    }
    windows, err := h.Service.SearchWindows(ctx, start, nights, quota, until)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": windows})
}
