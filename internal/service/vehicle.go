package service

import (
	"context"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/geo"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) RegisterVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Name == "" || v.LicensePlate == "" {
		return apperr.BadRequest("name and license plate are required")
	}
	if v.PricePerHour <= 0 || v.PricePerDay <= 0 {
		return apperr.BadRequest("prices must be positive")
	}
	if v.Latitude < -90 || v.Latitude > 90 || v.Longitude < -180 || v.Longitude > 180 {
		return apperr.BadRequest("invalid coordinates")
	}

	v.Status = domain.VehicleStatusPendingApproval
	v.IsAvailable = false
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return err
	}
	logger.Info("Vehicle registered", "vehicle_id", v.ID, "owner_id", v.OwnerID)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID int32, v *domain.Vehicle) error {
	existing, err := s.vehicleRepo.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return apperr.BadRequest("not the owner of this vehicle")
	}

	// Status and availability go through SetAvailability; keep them as-is.
	v.OwnerID = existing.OwnerID
	v.Status = existing.Status
	v.IsAvailable = existing.IsAvailable
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) SetAvailability(ctx context.Context, ownerID, vehicleID int32, status domain.VehicleStatus, isAvailable bool) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, apperr.BadRequest("not the owner of this vehicle")
	}
	if !domain.OwnerSettableStatus(status) {
		return nil, apperr.BadRequest("owners may only set AVAILABLE or MAINTENANCE")
	}
	if vehicle.Status == domain.VehicleStatusPendingApproval || vehicle.Status == domain.VehicleStatusRejected {
		return nil, apperr.BadRequest("vehicle has not been approved")
	}

	vehicle.Status = status
	vehicle.IsAvailable = isAvailable
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) ListMyVehicles(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

// SearchVehicles prefilters with a bounding box in SQL, then applies the
// exact haversine radius and annotates each hit with its distance.
func (s *vehicleService) SearchVehicles(ctx context.Context, lat, lon, radiusKm float64, maxPricePerHour int64, page, pageSize int32) ([]VehicleWithDistance, int32, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}

	minLat, maxLat, minLon, maxLon := geo.BoundingBox(lat, lon, radiusKm)
	vehicles, count, err := s.vehicleRepo.SearchInBox(ctx, minLat, maxLat, minLon, maxLon, maxPricePerHour, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	results := make([]VehicleWithDistance, 0, len(vehicles))
	for _, v := range vehicles {
		d := geo.DistanceKm(lat, lon, v.Latitude, v.Longitude)
		if d > radiusKm {
			count--
			continue
		}
		results = append(results, VehicleWithDistance{Vehicle: v, DistanceKm: d})
	}
	return results, count, nil
}

func (s *vehicleService) ApproveVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error) {
	return s.moderate(ctx, vehicleID, domain.VehicleStatusAvailable, true)
}

func (s *vehicleService) RejectVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error) {
	return s.moderate(ctx, vehicleID, domain.VehicleStatusRejected, false)
}

func (s *vehicleService) moderate(ctx context.Context, vehicleID int32, status domain.VehicleStatus, available bool) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusPendingApproval {
		return nil, apperr.BadRequest("vehicle is not pending approval")
	}

	vehicle.Status = status
	vehicle.IsAvailable = available
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	logger.Info("Vehicle moderated", "vehicle_id", vehicleID, "status", status)
	return vehicle, nil
}

func (s *vehicleService) ListPendingApproval(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.ListByStatus(ctx, domain.VehicleStatusPendingApproval, page, pageSize)
}
