package usecase

import (
	"context"
	"strings"

	"salesnote/internal/domain/model"
	repo "salesnote/internal/repository"
)

const (
	msgInvalidAddressType = "addressType debe ser billing o shipping"
	msgInvalidStreet      = "street es requerido"
	msgAddressFailed      = "Error al registrar domicilio"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

// DI
func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type RegisterAddressInput struct {
	ClientID     string
	AddressType  model.AddressType
	Street       string
	Neighborhood string
	Municipality string
	State        string
}

func (u *AddressUsecase) Register(ctx context.Context, in RegisterAddressInput) (model.Address, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return model.Address{}, validationError(msgInvalidClientID)
	}
	if !in.AddressType.Valid() {
		return model.Address{}, validationError(msgInvalidAddressType)
	}
	if strings.TrimSpace(in.Street) == "" {
		return model.Address{}, validationError(msgInvalidStreet)
	}

	created, err := u.addresses.Create(ctx, model.Address{
		ClientID:     clientID,
		AddressType:  in.AddressType,
		Street:       strings.TrimSpace(in.Street),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Municipality: strings.TrimSpace(in.Municipality),
		State:        strings.TrimSpace(in.State),
	})
	if err != nil {
		return model.Address{}, dependencyError(msgAddressFailed, err)
	}
	return created, nil
}

func (u *AddressUsecase) List(ctx context.Context, clientID string) ([]model.Address, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, validationError(msgInvalidClientID)
	}

	list, err := u.addresses.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, dependencyError(msgAddressFailed, err)
	}
	return list, nil
}
