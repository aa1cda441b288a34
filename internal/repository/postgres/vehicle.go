package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

const vehicleColumns = `id, owner_id, name, brand, model, license_plate, latitude, longitude, COALESCE(address, ''), price_per_hour, price_per_day, battery_capacity, max_range_km, status, is_available, total_trips, rating, created_on, updated_on`

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func scanVehicle(row interface{ Scan(...any) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Brand, &v.Model, &v.LicensePlate,
		&v.Latitude, &v.Longitude, &v.Address, &v.PricePerHour, &v.PricePerDay,
		&v.BatteryCapacity, &v.MaxRangeKm, &v.Status, &v.IsAvailable, &v.TotalTrips,
		&v.Rating, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	v.CreatedOn = createdOn.Format("2006-01-02")
	v.UpdatedOn = updatedOn.Format("2006-01-02")
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (owner_id, name, brand, model, license_plate, latitude, longitude, address, price_per_hour, price_per_day, battery_capacity, max_range_km, status, is_available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	now := time.Now()
	v.CreatedOn = now.Format("2006-01-02")
	v.UpdatedOn = v.CreatedOn
	err := r.db.QueryRowContext(ctx, query, v.OwnerID, v.Name, v.Brand, v.Model, v.LicensePlate,
		v.Latitude, v.Longitude, v.Address, v.PricePerHour, v.PricePerDay,
		v.BatteryCapacity, v.MaxRangeKm, v.Status, v.IsAvailable, now, now).Scan(&v.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("license plate already registered")
	}
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("vehicle not found")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET name=$1, brand=$2, model=$3, latitude=$4, longitude=$5, address=$6, price_per_hour=$7, price_per_day=$8, battery_capacity=$9, max_range_km=$10, status=$11, is_available=$12, updated_on=$13 WHERE id=$14`
	now := time.Now()
	v.UpdatedOn = now.Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, v.Name, v.Brand, v.Model, v.Latitude, v.Longitude, v.Address,
		v.PricePerHour, v.PricePerDay, v.BatteryCapacity, v.MaxRangeKm, v.Status, v.IsAvailable, now, v.ID)
	return err
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

// SearchInBox prefilters by a rectangular window so the query stays on the
// lat/lon index. The caller cuts the corners with the exact distance.
func (r *vehicleRepository) SearchInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64, maxPricePerHour int64, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	where := `WHERE status = $1 AND is_available = TRUE
	          AND latitude BETWEEN $2 AND $3 AND longitude BETWEEN $4 AND $5`
	args := []interface{}{domain.VehicleStatusAvailable, minLat, maxLat, minLon, maxLon}
	argIdx := 6
	if maxPricePerHour > 0 {
		where += fmt.Sprintf(" AND price_per_hour <= $%d", argIdx)
		args = append(args, maxPricePerHour)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles ` + where +
		fmt.Sprintf(" ORDER BY rating DESC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

func (r *vehicleRepository) ListByStatus(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = $1 ORDER BY created_on ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

func collectVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}
