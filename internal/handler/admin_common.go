package handler

import (
	"github.com/lmfraga/restaurant-table-reservation/internal/booking"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// AdminHandler bundles the repositories admins use to manage the
// catalog (restaurants, environments, tables), the client base and the
// reservation ledger.  All routes served by this handler sit behind JWT
// auth with the ADMIN role.
type AdminHandler struct {
	ClientRepo      *repository.ClientRepo
	RestaurantRepo  *repository.RestaurantRepo
	EnvironmentRepo *repository.EnvironmentRepo
	TableRepo       *repository.TableRepo
	ReservationRepo *repository.ReservationRepo
	Engine          *booking.Service
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(clients *repository.ClientRepo, restaurants *repository.RestaurantRepo, environments *repository.EnvironmentRepo, tables *repository.TableRepo, reservations *repository.ReservationRepo, engine *booking.Service) *AdminHandler {
	if clients == nil || restaurants == nil || environments == nil || tables == nil || reservations == nil || engine == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		ClientRepo:      clients,
		RestaurantRepo:  restaurants,
		EnvironmentRepo: environments,
		TableRepo:       tables,
		ReservationRepo: reservations,
		Engine:          engine,
	}
}
