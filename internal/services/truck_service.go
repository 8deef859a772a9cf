package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"haulcentral/internal/models"
)

type TruckService struct {
	TruckRepo TruckStore
	UserRepo  UserStore
}

func (s *TruckService) CreateTruck(ctx context.Context, userID string, req models.CreateTruckRequest) (models.Truck, error) {
	req.CurrentState = strings.ToUpper(strings.TrimSpace(req.CurrentState))
	req.DestinationState = strings.ToUpper(strings.TrimSpace(req.DestinationState))
	if err := req.Validate(); err != nil {
		return models.Truck{}, err
	}
	owner, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.Truck{}, err
	}

	now := time.Now().UTC()
	truck := models.Truck{
		ID:               uuid.NewString(),
		TruckID:          req.TruckID,
		CurrentCity:      req.CurrentCity,
		CurrentState:     req.CurrentState,
		DestinationCity:  req.DestinationCity,
		DestinationState: req.DestinationState,
		EquipmentType:    req.EquipmentType,
		AvailableDate:    req.AvailableDate,
		DriverID:         req.DriverID,
		DriverName:       req.DriverName,
		DriverPhone:      req.DriverPhone,
		CompanyName:      posterCompany(owner),
		PostedBy:         posterName(owner),
		UserID:           owner.ID,
		Status:           models.TruckStatusAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.TruckRepo.CreateTruck(ctx, truck)
}

func (s *TruckService) ListTrucks(ctx context.Context, userID string) ([]models.Truck, error) {
	trucks, err := s.TruckRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilTrucks(trucks), nil
}
