package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/repository"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetBySubscriberID(ctx context.Context, subscriberID string) (*domain.Customer, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, providerTag string, status domain.CustomerStatus) ([]domain.Customer, error) {
	args := m.Called(ctx, providerTag, status)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) ListRenewalsDueBy(ctx context.Context, cutoff string) ([]domain.Customer, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByMonth(ctx context.Context, billingMonth string) ([]domain.Payment, error) {
	args := m.Called(ctx, billingMonth)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ExistsForMonth(ctx context.Context, subscriberID, billingMonth string) (bool, error) {
	args := m.Called(ctx, subscriberID, billingMonth)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) CreateWithSettlement(ctx context.Context, payment *domain.Payment, settlement repository.Settlement) error {
	args := m.Called(ctx, payment, settlement)
	return args.Error(0)
}

// MockProviderRepo
type MockProviderRepo struct {
	mock.Mock
}

func (m *MockProviderRepo) GetByTag(ctx context.Context, tag string) (*domain.Provider, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}
func (m *MockProviderRepo) SetRate(ctx context.Context, tag, commissionPercent string) error {
	args := m.Called(ctx, tag, commissionPercent)
	return args.Error(0)
}
func (m *MockProviderRepo) List(ctx context.Context) ([]domain.Provider, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Provider), args.Error(1)
}

// MockComplaintRepo
type MockComplaintRepo struct {
	mock.Mock
}

func (m *MockComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}
func (m *MockComplaintRepo) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) Update(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}
func (m *MockComplaintRepo) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, customerID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, customerID, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name string, payment *domain.Payment) error {
	args := m.Called(ctx, email, name, payment)
	return args.Error(0)
}
func (m *MockEmailService) SendRenewalReminder(ctx context.Context, email, name, planName, renewalDate string) error {
	args := m.Called(ctx, email, name, planName, renewalDate)
	return args.Error(0)
}
func (m *MockEmailService) SendComplaintStatusUpdate(ctx context.Context, email, name, subject, status string) error {
	args := m.Called(ctx, email, name, subject, status)
	return args.Error(0)
}
