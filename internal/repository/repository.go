package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"ispdesk-backend/internal/domain"
)

var (
	// ErrStaleBalance means the customer's stored wallet/pending balances no
	// longer match the snapshot the settlement was computed from; the caller
	// must re-read and reconcile again.
	ErrStaleBalance = errors.New("customer balances changed since reconciliation")

	// ErrDuplicateBillingMonth means a payment for the same subscriber and
	// billing month was committed concurrently.
	ErrDuplicateBillingMonth = errors.New("billing month already settled for subscriber")
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetBySubscriberID(ctx context.Context, subscriberID string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, providerTag string, status domain.CustomerStatus) ([]domain.Customer, error)
	Search(ctx context.Context, query string) ([]domain.Customer, error)

	// Renewal window queries used by the scheduled jobs.
	ListRenewalsDueBy(ctx context.Context, cutoff string) ([]domain.Customer, error) // cutoff yyyy-mm-dd
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error)
	ListByMonth(ctx context.Context, billingMonth string) ([]domain.Payment, error)
	ExistsForMonth(ctx context.Context, subscriberID, billingMonth string) (bool, error)

	// CreateWithSettlement persists the payment and applies the settled
	// wallet/pending/renewal fields onto the customer in a single atomic
	// transaction. The transaction verifies the stored balances still equal
	// the read snapshot the settlement was computed from and fails with
	// ErrStaleBalance otherwise, so two concurrent submissions for the same
	// customer cannot both spend the same credit. It also reserves the
	// subscriber's billing month, failing with ErrDuplicateBillingMonth when
	// another payment claimed it first. A failed write persists nothing.
	CreateWithSettlement(ctx context.Context, payment *domain.Payment, settlement Settlement) error
}

// Settlement is the customer-side outcome of one reconciliation event.
type Settlement struct {
	CustomerID string

	// Balances the reconciliation read; the settlement write is conditional
	// on the stored values still matching them.
	ReadWalletBalance decimal.Decimal
	ReadPendingAmount decimal.Decimal

	FinalWalletBalance decimal.Decimal
	FinalPendingAmount decimal.Decimal
	RenewalDate        string // yyyy-mm-dd
	Status             domain.CustomerStatus
}

type ProviderRepository interface {
	GetByTag(ctx context.Context, tag string) (*domain.Provider, error)
	SetRate(ctx context.Context, tag, commissionPercent string) error
	List(ctx context.Context) ([]domain.Provider, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	Update(ctx context.Context, complaint *domain.Complaint) error
	ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, customerID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}
