package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values and errors.As matching
    "net/http" // HTTP status codes
    "time"    // date parsing for query and body fields

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/hotel-room-reservation/internal/availability"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
    "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// parseDate parses a YYYY-MM-DD value into a UTC midnight. All
// booking dates travel in this format.
func parseDate(raw string) (time.Time, error) {
    t, err := time.Parse("2006-01-02", raw)
    if err != nil {
        return time.Time{}, err
    }
    return t.UTC(), nil
}

// formatDate renders a date the way parseDate reads it.
func formatDate(t time.Time) string {
    return t.UTC().Format("2006-01-02")
}

// respondEngineError translates engine and repository errors into the
// HTTP responses the API contract promises. Validation failures are
// 400s; lifecycle misuse, shortages and retryable write conflicts are
// 409s (shortages carry their per-category detail); unknown ids are
// 404s. Anything unrecognized falls through to a 500.
func respondEngineError(c echo.Context, err error) error {
    var ins *availability.InsufficientError
    switch {
    case errors.Is(err, availability.ErrInvalidRange),
        errors.Is(err, availability.ErrEmptyQuota),
        errors.Is(err, availability.ErrNegativeQuota):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.As(err, &ins):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":     "insufficient rooms",
            "shortages": ins.Shortages,
        })
    case errors.Is(err, service.ErrAlreadyCommitted),
        errors.Is(err, service.ErrNotCommitted):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, service.ErrTxConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting update, retry", "retryable": true})
    case errors.Is(err, service.ErrRoomUnavailable),
        errors.Is(err, service.ErrRoomInactive):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrRoomNotFound),
        errors.Is(err, repository.ErrBlockNotFound),
        errors.Is(err, repository.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
