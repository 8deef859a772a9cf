package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"haulcentral/internal/models"
)

type LoadRepository struct {
	DB     *sql.DB
	Driver string
}

// LoadQuery selects loads for List. Empty fields do not filter; a zero
// Limit returns every match.
type LoadQuery struct {
	Status  string
	UserID  string
	OrderBy OrderBy
	Limit   int
}

type OrderBy struct {
	Field string
	Desc  bool
}

// NewestFirst is the board ordering.
var NewestFirst = OrderBy{Field: "createdAt", Desc: true}

var loadOrderColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"pickupDate": "pickup_date",
	"rate":       "rate",
	"miles":      "miles",
}

const loadColumns = `id, load_id, pickup_city, pickup_state, dropoff_city, dropoff_state,
        pickup_date, delivery_date, equipment_type, weight, length, rate, rate_type, miles,
        deadhead_miles, description, special_requirements, posted_by, posted_by_company,
        contact_phone, contact_email, user_id, status, is_backhaul, created_at, updated_at`

func (r *LoadRepository) q(query string) string {
	return rebind(r.Driver, query)
}

func (r *LoadRepository) CreateLoad(ctx context.Context, load models.Load) (models.Load, error) {
	query := `
        INSERT INTO loads (` + loadColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, r.q(query),
		load.ID,
		load.LoadID,
		load.PickupCity,
		load.PickupState,
		load.DropoffCity,
		load.DropoffState,
		load.PickupDate,
		load.DeliveryDate,
		load.EquipmentType,
		nullFloat(load.Weight),
		nullFloat(load.Length),
		load.Rate,
		load.RateType,
		load.Miles,
		nullFloat(load.DeadheadMiles),
		load.Description,
		load.SpecialRequirements,
		load.PostedBy,
		load.PostedByCompany,
		load.ContactPhone,
		load.ContactEmail,
		load.UserID,
		load.Status,
		load.IsBackhaul,
		load.CreatedAt,
		load.UpdatedAt,
	)
	if err != nil {
		return models.Load{}, err
	}
	return load, nil
}

func (r *LoadRepository) GetLoadByID(ctx context.Context, id string) (models.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE id = ?`

	load, err := scanLoad(r.DB.QueryRowContext(ctx, r.q(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Load{}, models.ErrLoadNotFound
	}
	if err != nil {
		return models.Load{}, err
	}
	return load, nil
}

// ListLoads returns loads matching q in the requested order.
func (r *LoadRepository) ListLoads(ctx context.Context, q LoadQuery) ([]models.Load, error) {
	var (
		conditions []string
		params     []interface{}
	)
	if q.Status != "" {
		conditions = append(conditions, "status = ?")
		params = append(params, q.Status)
	}
	if q.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		params = append(params, q.UserID)
	}

	query := `SELECT ` + loadColumns + ` FROM loads`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	order, err := orderClause(q.OrderBy)
	if err != nil {
		return nil, err
	}
	query += order

	if q.Limit > 0 {
		query += " LIMIT ?"
		params = append(params, q.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, r.q(query), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []models.Load
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loads, nil
}

// UpdateStatus moves a load from one status to another. It fails with
// ErrInvalidTransition when the stored status is no longer from.
func (r *LoadRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	query := `UPDATE loads SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.DB.ExecContext(ctx, r.q(query), to, time.Now().UTC(), id, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

func orderClause(o OrderBy) (string, error) {
	if o.Field == "" {
		o = NewestFirst
	}
	col, ok := loadOrderColumns[o.Field]
	if !ok {
		return "", fmt.Errorf("unsupported order field %q", o.Field)
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	// id breaks ties so equal timestamps keep a stable order.
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoad(row rowScanner) (models.Load, error) {
	var (
		l                        models.Load
		weight, length, deadhead sql.NullFloat64
	)
	err := row.Scan(
		&l.ID, &l.LoadID, &l.PickupCity, &l.PickupState, &l.DropoffCity, &l.DropoffState,
		&l.PickupDate, &l.DeliveryDate, &l.EquipmentType, &weight, &length, &l.Rate, &l.RateType, &l.Miles,
		&deadhead, &l.Description, &l.SpecialRequirements, &l.PostedBy, &l.PostedByCompany,
		&l.ContactPhone, &l.ContactEmail, &l.UserID, &l.Status, &l.IsBackhaul, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return models.Load{}, err
	}
	l.Weight = floatPtr(weight)
	l.Length = floatPtr(length)
	l.DeadheadMiles = floatPtr(deadhead)
	return l, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
