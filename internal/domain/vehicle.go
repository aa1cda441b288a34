package domain

type VehicleStatus string

const (
	VehicleStatusAvailable       VehicleStatus = "AVAILABLE"
	VehicleStatusRented          VehicleStatus = "RENTED"
	VehicleStatusMaintenance     VehicleStatus = "MAINTENANCE"
	VehicleStatusPendingApproval VehicleStatus = "PENDING_APPROVAL"
	VehicleStatusRejected        VehicleStatus = "REJECTED"
	VehicleStatusLocked          VehicleStatus = "LOCKED"
	VehicleStatusUnavailable     VehicleStatus = "UNAVAILABLE"
)

type Vehicle struct {
	ID           int32         `json:"id"`
	OwnerID      int32         `json:"owner_id"`
	Name         string        `json:"name"`
	Brand        string        `json:"brand"`
	Model        string        `json:"model"`
	LicensePlate string        `json:"license_plate"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Address      string        `json:"address"`
	// Prices are in the smallest currency unit (no decimals).
	PricePerHour    int64         `json:"price_per_hour"`
	PricePerDay     int64         `json:"price_per_day"`
	BatteryCapacity int32         `json:"battery_capacity"`
	MaxRangeKm      int32         `json:"max_range_km"`
	Status          VehicleStatus `json:"status"`
	IsAvailable     bool          `json:"is_available"`
	TotalTrips      int32         `json:"total_trips"`
	Rating          float64       `json:"rating"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}

// OwnerSettableStatus reports whether an owner may move a vehicle into the
// given status. Approval-gated states stay with the admin surface.
func OwnerSettableStatus(s VehicleStatus) bool {
	return s == VehicleStatusAvailable || s == VehicleStatusMaintenance
}
