// Package http exposes the REST and websocket surface over gorilla/mux.
package http

import (
	"net/http"

	"voltrent-backend/internal/realtime"
	"voltrent-backend/internal/security"
	"voltrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type Services struct {
	Auth          service.AuthService
	Bookings      service.BookingService
	Trips         service.TripService
	Payments      service.PaymentService
	Vehicles      service.VehicleService
	Notifications service.NotificationService
	Reviews       service.ReviewService
}

// NewRouter wires every route. Public routes are auth endpoints, vehicle
// search/detail and the health check; everything else requires a bearer
// access token.
func NewRouter(svcs Services, tokens security.TokenManager, hub *realtime.Hub) *mux.Router {
	auth := &authHandler{auth: svcs.Auth}
	bookings := &bookingHandler{bookings: svcs.Bookings}
	trips := &tripHandler{trips: svcs.Trips}
	payments := &paymentHandler{payments: svcs.Payments}
	vehicles := &vehicleHandler{vehicles: svcs.Vehicles, reviews: svcs.Reviews}
	notifications := &notificationHandler{notifications: svcs.Notifications}
	reviews := &reviewHandler{reviews: svcs.Reviews}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public surface.
	api.HandleFunc("/auth/signup", auth.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", auth.refresh).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/search", vehicles.search).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/reviews", vehicles.listReviews).Methods(http.MethodGet)

	// Authenticated surface.
	priv := api.NewRoute().Subrouter()
	priv.Use(mux.MiddlewareFunc(authMiddleware(tokens)))

	priv.HandleFunc("/me", auth.profile).Methods(http.MethodGet)
	priv.HandleFunc("/me", auth.updateProfile).Methods(http.MethodPatch)

	priv.HandleFunc("/bookings", bookings.create).Methods(http.MethodPost)
	priv.HandleFunc("/bookings", bookings.list).Methods(http.MethodGet)
	priv.HandleFunc("/bookings/{id:[0-9]+}", bookings.get).Methods(http.MethodGet)
	priv.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookings.cancel).Methods(http.MethodPatch)
	priv.HandleFunc("/bookings/vehicle/{vehicleId:[0-9]+}/schedule", bookings.schedule).Methods(http.MethodGet)

	priv.HandleFunc("/owner/bookings", bookings.ownerList).Methods(http.MethodGet)
	priv.HandleFunc("/owner/bookings/pending", bookings.ownerPending).Methods(http.MethodGet)
	priv.HandleFunc("/owner/bookings/{id:[0-9]+}/approve", bookings.approve).Methods(http.MethodPatch)
	priv.HandleFunc("/owner/bookings/{id:[0-9]+}/reject", bookings.reject).Methods(http.MethodPatch)

	priv.HandleFunc("/trips/start", trips.start).Methods(http.MethodPost)
	priv.HandleFunc("/trips/active", trips.active).Methods(http.MethodGet)
	priv.HandleFunc("/trips/{id:[0-9]+}", trips.get).Methods(http.MethodGet)
	priv.HandleFunc("/trips/{id:[0-9]+}/end", trips.end).Methods(http.MethodPatch)
	priv.HandleFunc("/trips/{id:[0-9]+}/report-issue", trips.reportIssue).Methods(http.MethodPatch)

	priv.HandleFunc("/payments", payments.create).Methods(http.MethodPost)
	priv.HandleFunc("/payments", payments.list).Methods(http.MethodGet)
	priv.HandleFunc("/payments/{id:[0-9]+}", payments.get).Methods(http.MethodGet)
	priv.HandleFunc("/payments/booking/{bookingId:[0-9]+}", payments.getForBooking).Methods(http.MethodGet)

	priv.HandleFunc("/vehicles", vehicles.register).Methods(http.MethodPost)
	priv.HandleFunc("/vehicles/mine", vehicles.listMine).Methods(http.MethodGet)
	priv.HandleFunc("/vehicles/{id:[0-9]+}/availability", vehicles.setAvailability).Methods(http.MethodPatch)

	priv.HandleFunc("/admin/vehicles/pending", adminOnly(vehicles.adminPending)).Methods(http.MethodGet)
	priv.HandleFunc("/admin/vehicles/{id:[0-9]+}/approve", adminOnly(vehicles.adminApprove)).Methods(http.MethodPatch)
	priv.HandleFunc("/admin/vehicles/{id:[0-9]+}/reject", adminOnly(vehicles.adminReject)).Methods(http.MethodPatch)

	priv.HandleFunc("/notifications", notifications.list).Methods(http.MethodGet)
	priv.HandleFunc("/notifications/unread-count", notifications.unreadCount).Methods(http.MethodGet)
	priv.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.markRead).Methods(http.MethodPatch)
	priv.HandleFunc("/notifications/read-all", notifications.markAllRead).Methods(http.MethodPatch)

	priv.HandleFunc("/device-tokens", notifications.registerDevice).Methods(http.MethodPost)
	priv.HandleFunc("/device-tokens", notifications.unregisterDevice).Methods(http.MethodDelete)

	priv.HandleFunc("/reviews", reviews.create).Methods(http.MethodPost)

	priv.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeUser(w, r, userIDFromContext(r.Context()))
	}).Methods(http.MethodGet)

	return r
}
