package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"haulcentral/internal/loadfilter"
	"haulcentral/internal/models"
)

var broker = models.User{ID: "broker-1", Email: "ops@acme.test", DisplayName: "Dana", CompanyName: "Acme Freight", Category: models.CategoryBrokerShipper}

func boardLoads() []models.Load {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Load{
		{ID: "a", LoadID: "LD1", PickupCity: "Dallas", PickupState: "TX", DropoffState: "CA", Rate: 2000, Miles: 1000, Status: models.LoadStatusAvailable, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "b", LoadID: "LD2", PickupCity: "Miami", PickupState: "FL", DropoffState: "CA", Rate: 1500, Miles: 0, Status: models.LoadStatusAvailable, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c", LoadID: "LD3", PickupCity: "Austin", PickupState: "TX", DropoffState: "NY", Rate: 900, Miles: 300, Status: models.LoadStatusBooked, CreatedAt: base.Add(time.Hour)},
	}
}

func validPostRequest() models.PostLoadRequest {
	return models.PostLoadRequest{
		PickupCity:    "Dallas",
		PickupState:   "tx",
		DropoffCity:   "Phoenix",
		DropoffState:  "AZ",
		PickupDate:    "2025-04-01",
		EquipmentType: "Reefer",
		Rate:          1800,
		Miles:         1065,
	}
}

func TestBoardFiltersAvailablePool(t *testing.T) {
	store := &stubLoads{loads: boardLoads()}
	svc := &LoadService{LoadRepo: store}

	spec := loadfilter.DefaultSpec()
	spec.PickupState = "TX"
	resp, err := svc.Board(context.Background(), spec)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if resp.Total != 2 || resp.Count != 1 {
		t.Fatalf("expected total 2 count 1, got %d/%d", resp.Total, resp.Count)
	}
	if resp.Loads[0].LoadID != "LD1" || resp.Loads[0].RatePerMile != "2.00" {
		t.Fatalf("unexpected board row %+v", resp.Loads[0])
	}
	if resp.Filters != spec {
		t.Fatalf("filters not echoed: %+v", resp.Filters)
	}

	q := store.queries[0]
	if q.Status != models.LoadStatusAvailable || q.Limit != 100 || q.OrderBy.Field != "createdAt" || !q.OrderBy.Desc {
		t.Fatalf("unexpected pool query %+v", q)
	}
}

func TestBoardZeroMilesDoesNotFail(t *testing.T) {
	svc := &LoadService{LoadRepo: &stubLoads{loads: boardLoads()}}
	spec := loadfilter.DefaultSpec()
	spec.SearchTerm = "miami"
	resp, err := svc.Board(context.Background(), spec)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if resp.Count != 1 || resp.Loads[0].RatePerMile != "+Inf" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestBoardUsesWarmCache(t *testing.T) {
	store := &stubLoads{loads: boardLoads()}
	cache := &stubCache{}
	svc := &LoadService{LoadRepo: store, Cache: cache, PoolLimit: 50}

	if _, err := svc.Board(context.Background(), loadfilter.DefaultSpec()); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if _, err := svc.Board(context.Background(), loadfilter.DefaultSpec()); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(store.queries) != 1 || cache.sets != 1 {
		t.Fatalf("expected one SQL fetch and one cache fill, got %d/%d", len(store.queries), cache.sets)
	}
	if store.queries[0].Limit != 50 {
		t.Fatalf("expected configured pool limit, got %d", store.queries[0].Limit)
	}

	if _, err := svc.RefreshBoard(context.Background(), loadfilter.DefaultSpec()); err != nil {
		t.Fatalf("RefreshBoard: %v", err)
	}
	if len(store.queries) != 2 || cache.invalidated != 1 {
		t.Fatalf("refresh must bypass the cache, got %d queries %d invalidations", len(store.queries), cache.invalidated)
	}
}

func TestBoardFallsBackWhenCacheFails(t *testing.T) {
	store := &stubLoads{loads: boardLoads()}
	svc := &LoadService{LoadRepo: store, Cache: &stubCache{getErr: errors.New("connection refused")}}
	resp, err := svc.Board(context.Background(), loadfilter.DefaultSpec())
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected pool from storage, got %d", resp.Total)
	}
}

func TestPostLoad(t *testing.T) {
	store := &stubLoads{}
	cache := &stubCache{warm: true}
	feed := &stubFeed{}
	svc := &LoadService{LoadRepo: store, UserRepo: newStubUsers(broker), Cache: cache, Feed: feed}

	load, err := svc.PostLoad(context.Background(), broker.ID, validPostRequest())
	if err != nil {
		t.Fatalf("PostLoad: %v", err)
	}
	if load.ID == "" || !strings.HasPrefix(load.LoadID, "LD") || len(load.LoadID) != 8 {
		t.Fatalf("ids not assigned: %q %q", load.ID, load.LoadID)
	}
	if load.PostedBy != "Dana" || load.PostedByCompany != "Acme Freight" || load.ContactEmail != broker.Email {
		t.Fatalf("poster fields wrong: %+v", load)
	}
	if load.Status != models.LoadStatusAvailable || load.RateType != models.RateTypeFlatRate || load.PickupState != "TX" {
		t.Fatalf("defaults not applied: %+v", load)
	}
	if len(store.loads) != 1 || cache.invalidated != 1 {
		t.Fatalf("expected stored load and invalidated cache")
	}
	if len(feed.events) != 1 || feed.events[0].event != FeedEventPosted {
		t.Fatalf("expected posted broadcast, got %+v", feed.events)
	}
}

func TestPostLoadPosterFallbacks(t *testing.T) {
	anon := models.User{ID: "u2", Email: "solo@example.com"}
	svc := &LoadService{LoadRepo: &stubLoads{}, UserRepo: newStubUsers(anon)}
	load, err := svc.PostLoad(context.Background(), anon.ID, validPostRequest())
	if err != nil {
		t.Fatalf("PostLoad: %v", err)
	}
	if load.PostedBy != "solo@example.com" || load.PostedByCompany != "Unknown Company" {
		t.Fatalf("unexpected fallbacks: %q %q", load.PostedBy, load.PostedByCompany)
	}
}

func TestPostLoadValidationNamesField(t *testing.T) {
	cases := []struct {
		field string
		edit  func(*models.PostLoadRequest)
	}{
		{"pickupCity", func(r *models.PostLoadRequest) { r.PickupCity = " " }},
		{"dropoffState", func(r *models.PostLoadRequest) { r.DropoffState = "Arizona" }},
		{"pickupDate", func(r *models.PostLoadRequest) { r.PickupDate = "04/01/2025" }},
		{"rate", func(r *models.PostLoadRequest) { r.Rate = 0 }},
		{"rateType", func(r *models.PostLoadRequest) { r.RateType = "hourly" }},
		{"miles", func(r *models.PostLoadRequest) { r.Miles = -3 }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			store := &stubLoads{}
			svc := &LoadService{LoadRepo: store, UserRepo: newStubUsers(broker)}
			req := validPostRequest()
			tc.edit(&req)

			_, err := svc.PostLoad(context.Background(), broker.ID, req)
			var verr *models.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
			if len(store.loads) != 0 {
				t.Fatal("invalid load was stored")
			}
		})
	}
}

func TestUpdateLoadStatus(t *testing.T) {
	owned := models.Load{ID: "l1", UserID: broker.ID, Status: models.LoadStatusAvailable}
	cases := []struct {
		name    string
		caller  string
		steps   []string
		wantErr error
	}{
		{"full lifecycle", broker.ID, []string{"booked", "in_transit", "delivered"}, nil},
		{"release booking", broker.ID, []string{"booked", "available"}, nil},
		{"skip ahead", broker.ID, []string{"delivered"}, models.ErrInvalidTransition},
		{"reopen delivered", broker.ID, []string{"booked", "in_transit", "delivered", "available"}, models.ErrInvalidTransition},
		{"not owner", "someone-else", []string{"booked"}, models.ErrNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := &stubFeed{}
			svc := &LoadService{LoadRepo: &stubLoads{loads: []models.Load{owned}}, Feed: feed}
			var err error
			for _, status := range tc.steps {
				if _, err = svc.UpdateLoadStatus(context.Background(), tc.caller, owned.ID, status); err != nil {
					break
				}
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateLoadStatusRejectsUnknownStatus(t *testing.T) {
	svc := &LoadService{LoadRepo: &stubLoads{}}
	_, err := svc.UpdateLoadStatus(context.Background(), "u", "l", "lost")
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
