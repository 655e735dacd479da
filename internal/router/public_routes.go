package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/handler"
)

// RegisterPublic registers unauthenticated browse and availability
// endpoints.  These routes return sanitized data and are intended for
// guests exploring restaurants before booking.  The optional browseMW
// middleware (response cache) is applied to the read-only routes.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, browseMW ...echo.MiddlewareFunc) {
	g := e.Group("/v1", browseMW...)
	// List all active restaurants
	g.GET("/restaurants", p.GetRestaurants)
	// Restaurant details
	g.GET("/restaurants/:id", p.GetRestaurant)
	// Seating areas of a restaurant
	g.GET("/restaurants/:id/environments", p.GetEnvironmentsByRestaurant)
	// All active tables of an environment
	g.GET("/environments/:id/tables", p.GetTablesByEnvironment)
	// Tables free for an exact slot and party size
	g.GET("/environments/:id/availability", p.GetAvailableTables)
}

// RegisterBooking registers the client-facing registration and
// reservation endpoints.  Clients do not authenticate; conflicting
// bookings are rejected by the booking engine regardless of caller.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler) {
	g := e.Group("/v1")
	g.POST("/clients", b.RegisterClient)
	g.GET("/clients/lookup", b.LookupClient)
	g.GET("/clients/:id/reservations", b.ListClientReservations)
	g.POST("/reservations", b.CreateReservation)
	g.GET("/reservations/:id", b.GetReservation)
	g.PATCH("/reservations/:id", b.UpdateReservation)
	g.POST("/reservations/:id/cancel", b.CancelReservation)
}
