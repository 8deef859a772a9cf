package services

import (
	"context"
	"time"

	"haulcentral/internal/models"
	"haulcentral/internal/repositories"
)

const (
	ownerOperatorLoadLimit  = 20
	ownerOperatorAlertLimit = 10
)

type OwnerOperatorDashboard struct {
	Loads          []models.Load          `json:"loads"`
	Trucks         []models.Truck         `json:"trucks"`
	BackhaulAlerts []models.BackhaulAlert `json:"backhaulAlerts"`
	TrialDaysLeft  int                    `json:"trialDaysLeft"`
}

type FleetStats struct {
	TotalTrucks  int `json:"totalTrucks"`
	ActiveTrucks int `json:"activeTrucks"`
	TotalDrivers int `json:"totalDrivers"`
}

type CarrierDashboard struct {
	Trucks        []models.Truck `json:"trucks"`
	Stats         FleetStats     `json:"stats"`
	TrialDaysLeft int            `json:"trialDaysLeft"`
}

type LoadStats struct {
	TotalLoads     int `json:"totalLoads"`
	ActiveLoads    int `json:"activeLoads"`
	CompletedLoads int `json:"completedLoads"`
}

type BrokerDashboard struct {
	Loads         []models.Load `json:"loads"`
	Stats         LoadStats     `json:"stats"`
	TrialDaysLeft int           `json:"trialDaysLeft"`
}

type DashboardService struct {
	LoadRepo  LoadStore
	TruckRepo TruckStore
	AlertRepo AlertStore
	UserRepo  UserStore
}

func (s *DashboardService) trialDaysLeft(ctx context.Context, userID string) (int, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return TrialDaysLeft(user, time.Now()), nil
}

func (s *DashboardService) OwnerOperator(ctx context.Context, userID string) (OwnerOperatorDashboard, error) {
	days, err := s.trialDaysLeft(ctx, userID)
	if err != nil {
		return OwnerOperatorDashboard{}, err
	}
	loads, err := s.LoadRepo.ListLoads(ctx, repositories.LoadQuery{
		Status:  models.LoadStatusAvailable,
		OrderBy: repositories.NewestFirst,
		Limit:   ownerOperatorLoadLimit,
	})
	if err != nil {
		return OwnerOperatorDashboard{}, err
	}
	trucks, err := s.TruckRepo.ListByUser(ctx, userID)
	if err != nil {
		return OwnerOperatorDashboard{}, err
	}
	alerts, err := s.AlertRepo.ListByUser(ctx, userID, models.AlertStatusPending, ownerOperatorAlertLimit)
	if err != nil {
		return OwnerOperatorDashboard{}, err
	}
	return OwnerOperatorDashboard{
		Loads:          nonNilLoads(loads),
		Trucks:         nonNilTrucks(trucks),
		BackhaulAlerts: nonNilAlerts(alerts),
		TrialDaysLeft:  days,
	}, nil
}

func (s *DashboardService) Carrier(ctx context.Context, userID string) (CarrierDashboard, error) {
	days, err := s.trialDaysLeft(ctx, userID)
	if err != nil {
		return CarrierDashboard{}, err
	}
	trucks, err := s.TruckRepo.ListByUser(ctx, userID)
	if err != nil {
		return CarrierDashboard{}, err
	}
	return CarrierDashboard{Trucks: nonNilTrucks(trucks), Stats: FleetStatsOf(trucks), TrialDaysLeft: days}, nil
}

func (s *DashboardService) Broker(ctx context.Context, userID string) (BrokerDashboard, error) {
	days, err := s.trialDaysLeft(ctx, userID)
	if err != nil {
		return BrokerDashboard{}, err
	}
	loads, err := s.LoadRepo.ListLoads(ctx, repositories.LoadQuery{UserID: userID, OrderBy: repositories.NewestFirst})
	if err != nil {
		return BrokerDashboard{}, err
	}
	return BrokerDashboard{Loads: nonNilLoads(loads), Stats: LoadStatsOf(loads), TrialDaysLeft: days}, nil
}

// FleetStatsOf counts every truck as having one driver.
func FleetStatsOf(trucks []models.Truck) FleetStats {
	stats := FleetStats{TotalTrucks: len(trucks), TotalDrivers: len(trucks)}
	for _, t := range trucks {
		if t.Status == models.TruckStatusAvailable {
			stats.ActiveTrucks++
		}
	}
	return stats
}

func LoadStatsOf(loads []models.Load) LoadStats {
	stats := LoadStats{TotalLoads: len(loads)}
	for _, l := range loads {
		switch l.Status {
		case models.LoadStatusAvailable:
			stats.ActiveLoads++
		case models.LoadStatusDelivered:
			stats.CompletedLoads++
		}
	}
	return stats
}

func nonNilLoads(v []models.Load) []models.Load {
	if v == nil {
		return []models.Load{}
	}
	return v
}

func nonNilTrucks(v []models.Truck) []models.Truck {
	if v == nil {
		return []models.Truck{}
	}
	return v
}

func nonNilAlerts(v []models.BackhaulAlert) []models.BackhaulAlert {
	if v == nil {
		return []models.BackhaulAlert{}
	}
	return v
}
