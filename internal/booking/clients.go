package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

// RegisterClient validates and persists a new client. Names are
// whitespace-cleaned and capitalized, emails normalized to lowercase so
// later lookups are case-insensitive. A duplicate email fails with a
// validation message.
func (s *Service) RegisterClient(ctx context.Context, name, email, phone string) (*model.Client, error) {
	if err := validator.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(phone); err != nil {
		return nil, err
	}
	normalized := validator.NormalizeEmail(email)
	if _, err := s.Clients.GetByEmail(ctx, normalized); err == nil {
		return nil, validator.NewValidationError("Email já cadastrado")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c := &model.Client{
		Name:  validator.CapitalizeName(validator.CleanString(name)),
		Email: normalized,
		Phone: strings.TrimSpace(phone),
	}
	if err := s.Clients.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, validator.NewValidationError("Email já cadastrado")
		}
		return nil, err
	}
	return c, nil
}

// LookupClientByEmail resolves a client by case-insensitive email.
func (s *Service) LookupClientByEmail(ctx context.Context, email string) (*model.Client, error) {
	return s.Clients.GetByEmail(ctx, validator.NormalizeEmail(email))
}

// UpdateClient re-validates any touched field with the same rules as
// registration and rejects an email already used by another client.
func (s *Service) UpdateClient(ctx context.Context, id uint64, upd repository.ClientUpdate) (*model.Client, error) {
	if id == 0 {
		return nil, validator.NewValidationError("Cliente é obrigatório")
	}
	if upd.Name != nil {
		if err := validator.ValidateName(*upd.Name); err != nil {
			return nil, err
		}
		cleaned := validator.CapitalizeName(validator.CleanString(*upd.Name))
		upd.Name = &cleaned
	}
	if upd.Email != nil {
		if err := validator.ValidateEmail(*upd.Email); err != nil {
			return nil, err
		}
		normalized := validator.NormalizeEmail(*upd.Email)
		if existing, err := s.Clients.GetByEmail(ctx, normalized); err == nil && existing.ID != id {
			return nil, validator.NewValidationError("Email já cadastrado por outro cliente")
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		upd.Email = &normalized
	}
	if upd.Phone != nil {
		if err := validator.ValidatePhone(*upd.Phone); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*upd.Phone)
		upd.Phone = &trimmed
	}
	return s.Clients.Update(ctx, id, upd)
}
