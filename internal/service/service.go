package service

import (
	"context"

	"ispdesk-backend/internal/billing"
	"ispdesk-backend/internal/domain"
)

type PaymentService interface {
	// RecordPayment runs one full collection event: duplicate check,
	// reconciliation, commission and renewal derivation, and the atomic
	// payment + customer balance write.
	RecordPayment(ctx context.Context, in billing.RecordInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListCustomerPayments(ctx context.Context, customerID string) ([]domain.Payment, error)
	MonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error)
}

type CustomerService interface {
	AddCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, providerTag string, status domain.CustomerStatus) ([]domain.Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)
	SetStatus(ctx context.Context, id string, status domain.CustomerStatus) error
}

type RateService interface {
	// GetRate returns the provider's commission percent as a parsed decimal
	// string, falling back to the configured default when the stored rate is
	// absent or unparseable.
	GetRate(ctx context.Context, providerTag string) (string, error)
	SetRate(ctx context.Context, providerTag, commissionPercent string) error
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

type ComplaintService interface {
	OpenComplaint(ctx context.Context, customerID, subject, detail string) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, complaintID string, status domain.ComplaintStatus) (*domain.Complaint, error)
	ListComplaints(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, customerID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error) // returns access token
}

type EmailService interface {
	SendPaymentReceipt(ctx context.Context, email, name string, payment *domain.Payment) error
	SendRenewalReminder(ctx context.Context, email, name, planName, renewalDate string) error
	SendComplaintStatusUpdate(ctx context.Context, email, name, subject, status string) error
}
