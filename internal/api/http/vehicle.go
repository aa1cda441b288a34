package http

import (
	"encoding/json"
	"net/http"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"
)

type vehicleHandler struct {
	vehicles service.VehicleService
	reviews  service.ReviewService
}

type registerVehicleRequest struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Address         string  `json:"address"`
	PricePerHour    int64   `json:"price_per_hour"`
	PricePerDay     int64   `json:"price_per_day"`
	BatteryCapacity int32   `json:"battery_capacity"`
	MaxRangeKm      int32   `json:"max_range_km"`
}

func (h *vehicleHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle := &domain.Vehicle{
		OwnerID:         userIDFromContext(r.Context()),
		Name:            req.Name,
		Brand:           req.Brand,
		Model:           req.Model,
		LicensePlate:    req.LicensePlate,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		PricePerHour:    req.PricePerHour,
		PricePerDay:     req.PricePerDay,
		BatteryCapacity: req.BatteryCapacity,
		MaxRangeKm:      req.MaxRangeKm,
	}
	if err := h.vehicles.RegisterVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *vehicleHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *vehicleHandler) search(w http.ResponseWriter, r *http.Request) {
	lat := queryFloat(r, "latitude", 0)
	lon := queryFloat(r, "longitude", 0)
	if lat == 0 && lon == 0 {
		respondError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}
	radius := queryFloat(r, "radius_km", 5)
	maxPrice := queryInt64(r, "max_price_per_hour", 0)
	page, pageSize := pageParams(r)

	results, total, err := h.vehicles.SearchVehicles(r.Context(), lat, lon, radius, maxPrice, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, results, total, page, pageSize)
}

func (h *vehicleHandler) listMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	vehicles, total, err := h.vehicles.ListMyVehicles(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, vehicles, total, page, pageSize)
}

type availabilityRequest struct {
	Status      domain.VehicleStatus `json:"status"`
	IsAvailable bool                 `json:"is_available"`
}

func (h *vehicleHandler) setAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.vehicles.SetAvailability(r.Context(), userIDFromContext(r.Context()), id, req.Status, req.IsAvailable)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *vehicleHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pageParams(r)

	reviews, total, err := h.reviews.ListVehicleReviews(r.Context(), id, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, reviews, total, page, pageSize)
}

func (h *vehicleHandler) adminApprove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.ApproveVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *vehicleHandler) adminReject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.RejectVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (h *vehicleHandler) adminPending(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	vehicles, total, err := h.vehicles.ListPendingApproval(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	respondPage(w, vehicles, total, page, pageSize)
}
