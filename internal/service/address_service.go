package service

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// addressService implements AddressService.
type addressService struct {
	addressRepo repository.AddressRepository
	logger      zerolog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(addressRepo repository.AddressRepository, logger zerolog.Logger) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		logger:      logger.With().Str("service", "address").Logger(),
	}
}

func (s *addressService) List(ctx context.Context, caller auth.Principal) ([]model.Address, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *addressService) Create(ctx context.Context, caller auth.Principal, req model.AddressRequest) (*model.Address, error) {
	address := &model.Address{
		UserID:     caller.UserID,
		Line1:      strings.TrimSpace(req.Line1),
		Line2:      req.Line2,
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
		IsDefault:  req.IsDefault,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	s.logger.Info().
		Str("user_id", caller.UserID.String()).
		Str("address_id", address.ID.String()).
		Bool("is_default", address.IsDefault).
		Msg("address created")

	return address, nil
}
