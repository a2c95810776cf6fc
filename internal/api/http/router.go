package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ispdesk-backend/internal/security"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Customer     *CustomerHandler
	Payment      *PaymentHandler
	Rate         *RateHandler
	Complaint    *ComplaintHandler
	Notification *NotificationHandler
}

// NewRouter builds the API router. Everything except login sits behind the
// bearer-token middleware.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/auth/login", h.Auth.Login).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Customers
	api.HandleFunc("/customers", h.Customer.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers", h.Customer.List).Methods(http.MethodGet)
	api.HandleFunc("/customers/search", h.Customer.Search).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.Customer.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.Customer.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", h.Customer.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/customers/{id}/status", h.Customer.SetStatus).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}/payments", h.Payment.ListByCustomer).Methods(http.MethodGet)

	// Payments
	api.HandleFunc("/payments", h.Payment.Record).Methods(http.MethodPost)
	api.HandleFunc("/payments/summary", h.Payment.MonthlySummary).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", h.Payment.Get).Methods(http.MethodGet)

	// Commission rates
	api.HandleFunc("/providers", h.Rate.List).Methods(http.MethodGet)
	api.HandleFunc("/providers/{tag}/rate", h.Rate.Get).Methods(http.MethodGet)
	api.HandleFunc("/providers/{tag}/rate", h.Rate.Set).Methods(http.MethodPut)

	// Complaints
	api.HandleFunc("/complaints", h.Complaint.Open).Methods(http.MethodPost)
	api.HandleFunc("/complaints", h.Complaint.List).Methods(http.MethodGet)
	api.HandleFunc("/complaints/{id}/status", h.Complaint.UpdateStatus).Methods(http.MethodPut)

	// Notifications
	api.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return router
}
