package repositories

import (
	"context"
	"database/sql"
	"time"

	"haulcentral/internal/models"
)

type SubscriptionRepository struct {
	DB     *sql.DB
	Driver string
}

// ExpireTrials marks every trial that ended before now as expired and
// reports how many accounts changed.
func (r *SubscriptionRepository) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE users
        SET subscription_status = ?
        WHERE subscription_status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at < ?
    `
	res, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), models.SubscriptionExpired, models.SubscriptionTrial, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
