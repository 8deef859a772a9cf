package repositories

import (
	"context"
	"database/sql"

	"haulcentral/internal/models"
)

type TruckRepository struct {
	DB     *sql.DB
	Driver string
}

const truckColumns = `id, truck_id, current_city, current_state, destination_city, destination_state,
        equipment_type, available_date, driver_id, driver_name, driver_phone, company_name,
        posted_by, user_id, status, created_at, updated_at`

func (r *TruckRepository) CreateTruck(ctx context.Context, truck models.Truck) (models.Truck, error) {
	query := `
        INSERT INTO trucks (` + truckColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, rebind(r.Driver, query),
		truck.ID, truck.TruckID, truck.CurrentCity, truck.CurrentState, truck.DestinationCity, truck.DestinationState,
		truck.EquipmentType, truck.AvailableDate, truck.DriverID, truck.DriverName, truck.DriverPhone, truck.CompanyName,
		truck.PostedBy, truck.UserID, truck.Status, truck.CreatedAt, truck.UpdatedAt,
	)
	if err != nil {
		return models.Truck{}, err
	}
	return truck, nil
}

func (r *TruckRepository) ListByUser(ctx context.Context, userID string) ([]models.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, rebind(r.Driver, query), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trucks []models.Truck
	for rows.Next() {
		var t models.Truck
		err := rows.Scan(
			&t.ID, &t.TruckID, &t.CurrentCity, &t.CurrentState, &t.DestinationCity, &t.DestinationState,
			&t.EquipmentType, &t.AvailableDate, &t.DriverID, &t.DriverName, &t.DriverPhone, &t.CompanyName,
			&t.PostedBy, &t.UserID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trucks, nil
}
