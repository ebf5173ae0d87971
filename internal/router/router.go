package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (register, login,
	// refresh).  Each of these handlers is responsible for generating or
	// exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token in the body (revoke one session), so it does not sit
	// behind the JWT middleware.
	g.POST("/logout", a.Logout)

	// Protected endpoints live under /v1 and require a valid access token
	// carrying one of the known roles.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "STAFF"))
	auth.GET("/me", a.Me)
}

// RegisterRooms registers room inventory endpoints under /v1.  Mutations are
// restricted to ADMIN; reads are open to any authenticated staff member.
func RegisterRooms(e *echo.Echo, r *handler.RoomHandler, jwtSecret string) {
	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.POST("/rooms", r.Create)
	admin.PATCH("/rooms/:id", r.SetActive)
	admin.DELETE("/rooms/:id", r.Delete)

	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	staff.GET("/rooms", r.List)
	staff.GET("/rooms/:id", r.Get)
}

// RegisterBookings registers individual booking endpoints under /v1 for any
// authenticated role.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	g.POST("/bookings", b.Create)
	g.GET("/bookings/:id", b.Get)
	g.DELETE("/bookings/:id", b.Cancel)
	g.GET("/rooms/:id/bookings", b.ListByRoom)
}

// RegisterBlocks registers block lifecycle endpoints under /v1.  Creating,
// committing and releasing blocks is staff work, so both roles are allowed.
func RegisterBlocks(e *echo.Echo, b *handler.BlockHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	g.POST("/blocks", b.Create)
	g.GET("/blocks", b.List)
	g.GET("/blocks/:id", b.Get)
	g.POST("/blocks/:id/commit", b.Commit)
	g.POST("/blocks/:id/release", b.Release)
}

// RegisterAvailability registers the read-only availability endpoints.  The
// optional cache middleware (backed by redis) may be nil, in which case the
// routes are served uncached.
func RegisterAvailability(e *echo.Echo, a *handler.AvailabilityHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/availability",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/rooms", a.FreeRooms)
	g.GET("/windows", a.Windows)
}
