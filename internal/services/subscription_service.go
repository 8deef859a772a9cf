package services

import (
	"context"
	"math"
	"time"

	"haulcentral/internal/models"
)

type SubscriptionService struct {
	Repo SubscriptionStore
}

// ExpireTrials closes every trial that ended before now.
func (s *SubscriptionService) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	return s.Repo.ExpireTrials(ctx, now)
}

// TrialDaysLeft rounds the remaining trial up to whole days. Users outside a
// trial have none left.
func TrialDaysLeft(user models.User, now time.Time) int {
	if user.SubscriptionStatus != models.SubscriptionTrial || user.TrialEndsAt == nil {
		return 0
	}
	left := user.TrialEndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}
