package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/handler"
	"github.com/lmfraga/restaurant-table-reservation/internal/middleware"
)

// RegisterAuth registers the admin login route and the authenticated
// /v1/admin/me profile route.  Login is unauthenticated; everything
// else under /v1/admin requires a valid access token with the ADMIN role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	g.GET("/me", a.Me)
}

// RegisterAdmin registers the catalog and reservation management routes
// behind JWT auth with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	// Restaurants
	g.POST("/restaurants", h.CreateRestaurant)
	g.GET("/restaurants", h.ListRestaurants)
	g.PATCH("/restaurants/:id", h.UpdateRestaurant)
	g.DELETE("/restaurants/:id", h.DeleteRestaurant)

	// Environments
	g.POST("/environments", h.CreateEnvironment)
	g.PATCH("/environments/:id", h.UpdateEnvironment)
	g.DELETE("/environments/:id", h.DeleteEnvironment)

	// Tables
	g.POST("/tables", h.CreateTable)
	g.PATCH("/tables/:id", h.UpdateTable)
	g.DELETE("/tables/:id", h.DeleteTable)

	// Clients
	g.GET("/clients", h.ListClients)
	g.GET("/clients/:id", h.GetClient)
	g.PATCH("/clients/:id", h.UpdateClient)
	g.DELETE("/clients/:id", h.DeleteClient)

	// Reservations
	g.GET("/reservations", h.ListReservationsByDate)
	g.GET("/restaurants/:id/reservations", h.ListReservationsByRestaurant)
	g.PATCH("/reservations/:id/status", h.UpdateReservationStatus)
	g.DELETE("/reservations/:id", h.PurgeReservation)

	// Reports
	g.GET("/restaurants/:id/occupancy", h.GetOccupancyReport)
}
