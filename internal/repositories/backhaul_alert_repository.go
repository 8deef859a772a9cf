package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"haulcentral/internal/models"
)

type BackhaulAlertRepository struct {
	DB     *sql.DB
	Driver string
}

const alertColumns = `id, load_id, truck_id, user_id, match_score, distance, estimated_deadhead,
        alert_sent_at, status, pushed_at`

func scanAlert(row rowScanner) (models.BackhaulAlert, error) {
	var (
		a        models.BackhaulAlert
		pushedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.LoadID, &a.TruckID, &a.UserID, &a.MatchScore, &a.Distance,
		&a.EstimatedDeadhead, &a.AlertSentAt, &a.Status, &pushedAt)
	if err != nil {
		return models.BackhaulAlert{}, err
	}
	if pushedAt.Valid {
		t := pushedAt.Time
		a.PushedAt = &t
	}
	return a, nil
}

// ListByUser returns the user's alerts in the given status, newest first.
func (r *BackhaulAlertRepository) ListByUser(ctx context.Context, userID, status string, limit int) ([]models.BackhaulAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM backhaul_alerts WHERE user_id = ?`
	params := []interface{}{userID}
	if status != "" {
		query += " AND status = ?"
		params = append(params, status)
	}
	query += " ORDER BY alert_sent_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		params = append(params, limit)
	}

	rows, err := r.DB.QueryContext(ctx, rebind(r.Driver, query), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.BackhaulAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *BackhaulAlertRepository) GetByID(ctx context.Context, id string) (models.BackhaulAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM backhaul_alerts WHERE id = ?`
	a, err := scanAlert(r.DB.QueryRowContext(ctx, rebind(r.Driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.BackhaulAlert{}, models.ErrAlertNotFound
	}
	return a, err
}

func (r *BackhaulAlertRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE backhaul_alerts SET status = ? WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), status, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrAlertNotFound
	}
	return nil
}

// ListUnpushedPending returns pending alerts that were never pushed, have
// failed fewer than maxAttempts times, and whose owner has registered a
// device token.
func (r *BackhaulAlertRepository) ListUnpushedPending(ctx context.Context, limit, maxAttempts int) ([]models.PendingPush, error) {
	query := `
        SELECT a.id, a.load_id, a.truck_id, a.user_id, a.match_score, a.distance, a.estimated_deadhead,
               a.alert_sent_at, a.status, a.pushed_at, u.fcm_token
        FROM backhaul_alerts a
        JOIN users u ON u.id = a.user_id
        WHERE a.status = ? AND a.pushed_at IS NULL AND a.push_attempts < ? AND u.fcm_token <> ''
        ORDER BY a.alert_sent_at ASC
        LIMIT ?
    `
	rows, err := r.DB.QueryContext(ctx, rebind(r.Driver, query), models.AlertStatusPending, maxAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PendingPush
	for rows.Next() {
		var (
			p        models.PendingPush
			pushedAt sql.NullTime
		)
		a := &p.Alert
		err := rows.Scan(&a.ID, &a.LoadID, &a.TruckID, &a.UserID, &a.MatchScore, &a.Distance,
			&a.EstimatedDeadhead, &a.AlertSentAt, &a.Status, &pushedAt, &p.FCMToken)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BackhaulAlertRepository) MarkPushed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE backhaul_alerts SET pushed_at = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), at, id)
	return err
}

const maxPushErrorLen = 512

// RecordPushFailure counts a failed send and keeps the latest reason.
func (r *BackhaulAlertRepository) RecordPushFailure(ctx context.Context, id, reason string) error {
	if len(reason) > maxPushErrorLen {
		reason = reason[:maxPushErrorLen]
	}
	query := `UPDATE backhaul_alerts SET push_attempts = push_attempts + 1, last_push_error = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), reason, id)
	return err
}
