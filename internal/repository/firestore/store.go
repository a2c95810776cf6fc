package firestore

import (
	"cloud.google.com/go/firestore"

	"ispdesk-backend/internal/repository"
)

// Collection names in the Firestore project.
const (
	colCustomers     = "customers"
	colPayments      = "payments"
	colPaymentMonths = "payment_months"
	colProviders     = "providers"
	colComplaints    = "complaints"
	colNotifications = "notifications"
)

type Store struct {
	client *firestore.Client
	repository.CustomerRepository
	repository.PaymentRepository
	repository.ProviderRepository
	repository.ComplaintRepository
	repository.NotificationRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:                 client,
		CustomerRepository:     NewCustomerRepository(client),
		PaymentRepository:      NewPaymentRepository(client),
		ProviderRepository:     NewProviderRepository(client),
		ComplaintRepository:    NewComplaintRepository(client),
		NotificationRepository: NewNotificationRepository(client),
	}
}
