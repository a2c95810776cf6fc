package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) AddCustomer(ctx context.Context, customer *domain.Customer) error {
	logger.EnterMethod("customerService.AddCustomer", "subscriber_id", customer.SubscriberID)

	if strings.TrimSpace(customer.Name) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(customer.SubscriberID) == "" {
		return fmt.Errorf("subscriber id is required")
	}

	if existing, err := s.customerRepo.GetBySubscriberID(ctx, customer.SubscriberID); err == nil && existing != nil {
		return fmt.Errorf("subscriber %s already exists", customer.SubscriberID)
	}

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.Status == "" {
		customer.Status = domain.CustomerStatusActive
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.ExitMethodWithError("customerService.AddCustomer", err, "subscriber_id", customer.SubscriberID)
		return err
	}

	logger.ExitMethod("customerService.AddCustomer", "customer_id", customer.ID)
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	logger.EnterMethod("customerService.UpdateCustomer", "customer_id", customer.ID)

	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return ErrCustomerNotFound
	}

	// Balance fields are owned by the settlement path, never by a profile edit.
	customer.WalletBalance = existing.WalletBalance
	customer.PendingAmount = existing.PendingAmount
	customer.CreatedAt = existing.CreatedAt

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		logger.ExitMethodWithError("customerService.UpdateCustomer", err, "customer_id", customer.ID)
		return err
	}

	logger.ExitMethod("customerService.UpdateCustomer", "customer_id", customer.ID)
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	logger.EnterMethod("customerService.DeleteCustomer", "customer_id", id)
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return ErrCustomerNotFound
	}
	err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("customerService.DeleteCustomer", err, "customer_id", id)
		return err
	}
	logger.ExitMethod("customerService.DeleteCustomer", "customer_id", id)
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context, providerTag string, status domain.CustomerStatus) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, providerTag, status)
}

func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	return s.customerRepo.Search(ctx, query)
}

func (s *customerService) SetStatus(ctx context.Context, id string, status domain.CustomerStatus) error {
	logger.EnterMethod("customerService.SetStatus", "customer_id", id, "status", status)

	switch status {
	case domain.CustomerStatusActive, domain.CustomerStatusInactive, domain.CustomerStatusExpired:
	default:
		return fmt.Errorf("invalid customer status: %s", status)
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return ErrCustomerNotFound
	}
	customer.Status = status

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		logger.ExitMethodWithError("customerService.SetStatus", err, "customer_id", id)
		return err
	}

	logger.ExitMethod("customerService.SetStatus", "customer_id", id, "status", status)
	return nil
}
