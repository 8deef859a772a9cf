package repositories

import (
	"context"
	"database/sql"

	"haulcentral/internal/models"
)

type CompanyUserRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *CompanyUserRepository) ListByCompany(ctx context.Context, companyID string) ([]models.CompanyUser, error) {
	query := `
        SELECT id, company_id, email, display_name, is_admin, keycode, status, last_login, created_at
        FROM company_users
        WHERE company_id = ?
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.DB.QueryContext(ctx, rebind(r.Driver, query), companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.CompanyUser
	for rows.Next() {
		var (
			u         models.CompanyUser
			lastLogin sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.Keycode,
			&u.Status, &lastLogin, &u.CreatedAt); err != nil {
			return nil, err
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			u.LastLogin = &t
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *CompanyUserRepository) CreateCompanyUser(ctx context.Context, u models.CompanyUser) (models.CompanyUser, error) {
	query := `
        INSERT INTO company_users (id, company_id, email, display_name, is_admin, keycode, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query),
		u.ID, u.CompanyID, u.Email, u.DisplayName, u.IsAdmin, u.Keycode, u.Status, u.CreatedAt)
	if err != nil {
		return models.CompanyUser{}, err
	}
	return u, nil
}
