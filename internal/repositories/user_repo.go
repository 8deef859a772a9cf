package repositories

import (
	"context"
	"database/sql"
	"errors"

	"haulcentral/internal/models"
)

type UserRepository struct {
	DB     *sql.DB
	Driver string
}

const userColumns = `id, email, password, display_name, category, company_name, dot_number, mc_number,
        keycode, is_admin, trial_ends_at, subscription_tier, subscription_status, fcm_token, created_at`

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		trialEnds sql.NullTime
		tier      sql.NullString
		subStatus sql.NullString
		keycode   sql.NullString
		fcmToken  sql.NullString
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.DisplayName, &user.Category, &user.CompanyName,
		&user.DOTNumber, &user.MCNumber, &keycode, &user.IsAdmin, &trialEnds, &tier, &subStatus,
		&fcmToken, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if trialEnds.Valid {
		t := trialEnds.Time
		user.TrialEndsAt = &t
	}
	user.Keycode = keycode.String
	user.SubscriptionTier = tier.String
	user.SubscriptionStatus = subStatus.String
	user.FCMToken = fcmToken.String
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (id, email, password, display_name, category, company_name, dot_number, mc_number,
                           keycode, is_admin, trial_ends_at, subscription_tier, subscription_status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query),
		user.ID, user.Email, user.Password, user.DisplayName, user.Category, user.CompanyName,
		user.DOTNumber, user.MCNumber, user.Keycode, user.IsAdmin, user.TrialEndsAt,
		user.SubscriptionTier, user.SubscriptionStatus, user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.DB.QueryRowContext(ctx, rebind(r.Driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user, err := scanUser(r.DB.QueryRowContext(ctx, rebind(r.Driver, query), email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) SetSession(ctx context.Context, userID string, session models.Session) error {
	query := `UPDATE users SET refresh_token = ?, expires_at = ? WHERE id = ?`

	result, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), session.RefreshToken, session.ExpiresAt, userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// GetSessionByToken resolves a refresh token to its owner's session.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `
        SELECT id, category, is_admin, refresh_token, expires_at
        FROM users
        WHERE refresh_token = ?
    `
	var (
		session   models.Session
		expiresAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, rebind(r.Driver, query), refreshToken).Scan(
		&session.UserID, &session.Category, &session.IsAdmin, &session.RefreshToken, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrSessionExpired
	}
	if err != nil {
		return models.Session{}, err
	}
	session.ExpiresAt = expiresAt.Time
	return session, nil
}

func (r *UserRepository) ClearSession(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token = NULL, expires_at = NULL WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), userID)
	return err
}

func (r *UserRepository) SetFCMToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET fcm_token = ? WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), token, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetKeycode(ctx context.Context, userID, keycodeHash string) error {
	query := `UPDATE users SET keycode = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query), keycodeHash, userID)
	return err
}
