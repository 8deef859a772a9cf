package services

import (
	"context"
	"time"

	"haulcentral/internal/models"
	"haulcentral/internal/repositories"
)

// The interfaces below are satisfied by the repositories package and by
// in-memory stubs in tests.

type LoadStore interface {
	ListLoads(ctx context.Context, q repositories.LoadQuery) ([]models.Load, error)
	CreateLoad(ctx context.Context, load models.Load) (models.Load, error)
	GetLoadByID(ctx context.Context, id string) (models.Load, error)
	UpdateStatus(ctx context.Context, id, from, to string) error
}

// PoolCache holds the available-load pool between board views.
type PoolCache interface {
	Get(ctx context.Context) ([]models.Load, bool, error)
	Set(ctx context.Context, loads []models.Load) error
	Invalidate(ctx context.Context) error
}

// BoardFeed is told about every load that enters or leaves the board.
type BoardFeed interface {
	BroadcastLoad(event string, load models.Load)
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SetSession(ctx context.Context, userID string, session models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
	ClearSession(ctx context.Context, userID string) error
	SetFCMToken(ctx context.Context, userID, token string) error
	SetKeycode(ctx context.Context, userID, keycodeHash string) error
}

type TruckStore interface {
	CreateTruck(ctx context.Context, truck models.Truck) (models.Truck, error)
	ListByUser(ctx context.Context, userID string) ([]models.Truck, error)
}

type AlertStore interface {
	ListByUser(ctx context.Context, userID, status string, limit int) ([]models.BackhaulAlert, error)
	GetByID(ctx context.Context, id string) (models.BackhaulAlert, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListUnpushedPending(ctx context.Context, limit, maxAttempts int) ([]models.PendingPush, error)
	MarkPushed(ctx context.Context, id string, at time.Time) error
	RecordPushFailure(ctx context.Context, id, reason string) error
}

type CompanyUserStore interface {
	ListByCompany(ctx context.Context, companyID string) ([]models.CompanyUser, error)
	CreateCompanyUser(ctx context.Context, u models.CompanyUser) (models.CompanyUser, error)
}

type SubscriptionStore interface {
	ExpireTrials(ctx context.Context, now time.Time) (int64, error)
}

type ObjectUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
