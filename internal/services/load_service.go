package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"haulcentral/internal/fsm"
	"haulcentral/internal/loadfilter"
	"haulcentral/internal/models"
	"haulcentral/internal/repositories"
	"haulcentral/utils"
)

const (
	defaultPoolLimit = 100
	unknownCompany   = "Unknown Company"
	FeedEventPosted  = "load_posted"
	FeedEventStatus  = "load_status"
)

// BoardLoad is a load as shown on the board, with its display rate.
type BoardLoad struct {
	models.Load
	RatePerMile string `json:"ratePerMile"`
}

type BoardResponse struct {
	Total   int                   `json:"total"`
	Count   int                   `json:"count"`
	Loads   []BoardLoad           `json:"loads"`
	Filters loadfilter.FilterSpec `json:"filters"`
}

type LoadService struct {
	LoadRepo  LoadStore
	UserRepo  UserStore
	Cache     PoolCache
	Feed      BoardFeed
	PoolLimit int
	Radius    loadfilter.RadiusMatcher
	ErrorLog  *log.Logger
}

func (s *LoadService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}

func (s *LoadService) poolLimit() int {
	if s.PoolLimit > 0 {
		return s.PoolLimit
	}
	return defaultPoolLimit
}

// Pool returns the newest available loads, from the cache when it is warm.
func (s *LoadService) Pool(ctx context.Context) ([]models.Load, error) {
	if s.Cache != nil {
		loads, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.logf("board cache read: %v", err)
		} else if ok {
			return loads, nil
		}
	}

	loads, err := s.LoadRepo.ListLoads(ctx, repositories.LoadQuery{
		Status:  models.LoadStatusAvailable,
		OrderBy: repositories.NewestFirst,
		Limit:   s.poolLimit(),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch board pool: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, loads); err != nil {
			s.logf("board cache write: %v", err)
		}
	}
	return loads, nil
}

// Board applies spec to the current pool.
func (s *LoadService) Board(ctx context.Context, spec loadfilter.FilterSpec) (BoardResponse, error) {
	pool, err := s.Pool(ctx)
	if err != nil {
		return BoardResponse{}, err
	}
	filtered := loadfilter.ApplyWithRadius(pool, spec, s.Radius)

	resp := BoardResponse{
		Total:   len(pool),
		Count:   len(filtered),
		Loads:   make([]BoardLoad, 0, len(filtered)),
		Filters: spec,
	}
	for _, l := range filtered {
		resp.Loads = append(resp.Loads, BoardLoad{Load: l, RatePerMile: loadfilter.FormatRatePerMile(l)})
	}
	return resp, nil
}

// RefreshBoard drops the cached pool and rebuilds the board from storage.
func (s *LoadService) RefreshBoard(ctx context.Context, spec loadfilter.FilterSpec) (BoardResponse, error) {
	s.invalidate(ctx)
	return s.Board(ctx, spec)
}

func (s *LoadService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.logf("board cache invalidate: %v", err)
	}
}

// PostLoad publishes a new available load on behalf of userID.
func (s *LoadService) PostLoad(ctx context.Context, userID string, req models.PostLoadRequest) (models.Load, error) {
	if err := req.Validate(); err != nil {
		return models.Load{}, err
	}
	poster, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.Load{}, err
	}

	now := time.Now().UTC()
	load := models.Load{
		ID:                  uuid.NewString(),
		LoadID:              utils.NewLoadCode(),
		PickupCity:          req.PickupCity,
		PickupState:         req.PickupState,
		DropoffCity:         req.DropoffCity,
		DropoffState:        req.DropoffState,
		PickupDate:          req.PickupDate,
		DeliveryDate:        req.DeliveryDate,
		EquipmentType:       req.EquipmentType,
		Weight:              req.Weight,
		Length:              req.Length,
		Rate:                req.Rate,
		RateType:            req.RateType,
		Miles:               req.Miles,
		DeadheadMiles:       req.DeadheadMiles,
		Description:         req.Description,
		SpecialRequirements: req.SpecialRequirements,
		PostedBy:            posterName(poster),
		PostedByCompany:     posterCompany(poster),
		ContactPhone:        req.ContactPhone,
		ContactEmail:        poster.Email,
		UserID:              poster.ID,
		Status:              models.LoadStatusAvailable,
		IsBackhaul:          req.IsBackhaul,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	load, err = s.LoadRepo.CreateLoad(ctx, load)
	if err != nil {
		return models.Load{}, err
	}

	s.invalidate(ctx)
	if s.Feed != nil {
		s.Feed.BroadcastLoad(FeedEventPosted, load)
	}
	return load, nil
}

func posterName(u models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

func posterCompany(u models.User) string {
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return unknownCompany
}

func (s *LoadService) GetLoad(ctx context.Context, id string) (models.Load, error) {
	return s.LoadRepo.GetLoadByID(ctx, id)
}

// ListOwnLoads returns the loads userID posted, newest first.
func (s *LoadService) ListOwnLoads(ctx context.Context, userID string) ([]models.Load, error) {
	return s.LoadRepo.ListLoads(ctx, repositories.LoadQuery{UserID: userID, OrderBy: repositories.NewestFirst})
}

// UpdateLoadStatus moves a load the caller posted to a new status.
func (s *LoadService) UpdateLoadStatus(ctx context.Context, userID, loadID, status string) (models.Load, error) {
	if !fsm.ValidStatus(status) {
		return models.Load{}, &models.ValidationError{Field: "status", Reason: "is not a known load status"}
	}
	load, err := s.LoadRepo.GetLoadByID(ctx, loadID)
	if err != nil {
		return models.Load{}, err
	}
	if load.UserID != userID {
		return models.Load{}, models.ErrNotOwner
	}
	if load.Status == status {
		return load, nil
	}
	if !fsm.CanTransition(load.Status, status) {
		return models.Load{}, models.ErrInvalidTransition
	}
	if err := s.LoadRepo.UpdateStatus(ctx, loadID, load.Status, status); err != nil {
		return models.Load{}, err
	}

	load.Status = status
	load.UpdatedAt = time.Now().UTC()
	s.invalidate(ctx)
	if s.Feed != nil {
		s.Feed.BroadcastLoad(FeedEventStatus, load)
	}
	return load, nil
}
