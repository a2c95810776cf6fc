package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type complaintService struct {
	complaintRepo    repository.ComplaintRepository
	customerRepo     repository.CustomerRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	customerRepo repository.CustomerRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
) ComplaintService {
	return &complaintService{
		complaintRepo:    complaintRepo,
		customerRepo:     customerRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
	}
}

func (s *complaintService) OpenComplaint(ctx context.Context, customerID, subject, detail string) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.OpenComplaint", "customer_id", customerID)

	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("complaint subject is required")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.OpenComplaint", err, "customer_id", customerID)
		return nil, ErrCustomerNotFound
	}

	complaint := &domain.Complaint{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		MobileNo:     customer.MobileNo,
		Subject:      strings.TrimSpace(subject),
		Detail:       strings.TrimSpace(detail),
		Status:       domain.ComplaintStatusOpen,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		logger.ExitMethodWithError("complaintService.OpenComplaint", err, "customer_id", customerID)
		return nil, err
	}

	notification := &domain.Notification{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Title:      "Complaint Registered",
		Message:    fmt.Sprintf("Complaint from %s: %s", customer.Name, complaint.Subject),
		Attributes: map[string]string{
			"topic":        "complaint_opened",
			"complaint_id": complaint.ID,
		},
	}
	_ = s.notificationRepo.Create(ctx, notification)

	logger.ExitMethod("complaintService.OpenComplaint", "complaint_id", complaint.ID)
	return complaint, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, complaintID string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.UpdateStatus", "complaint_id", complaintID, "status", status)

	switch status {
	case domain.ComplaintStatusOpen, domain.ComplaintStatusInProgress, domain.ComplaintStatusResolved:
	default:
		return nil, fmt.Errorf("invalid complaint status: %s", status)
	}

	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, ErrComplaintNotFound
	}

	complaint.Status = status
	if status == domain.ComplaintStatusResolved {
		now := time.Now().UTC()
		complaint.ResolvedAt = &now
	}

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		logger.ExitMethodWithError("complaintService.UpdateStatus", err, "complaint_id", complaintID)
		return nil, err
	}

	// Tell the customer, best effort.
	if customer, cerr := s.customerRepo.GetByID(ctx, complaint.CustomerID); cerr == nil && customer.Email != "" {
		_ = s.emailSvc.SendComplaintStatusUpdate(ctx, customer.Email, customer.Name, complaint.Subject, string(status))
	}

	logger.ExitMethod("complaintService.UpdateStatus", "complaint_id", complaintID, "status", status)
	return complaint, nil
}

func (s *complaintService) ListComplaints(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	return s.complaintRepo.ListByStatus(ctx, status)
}
