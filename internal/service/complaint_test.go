package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ispdesk-backend/internal/domain"
)

func newComplaintFixture() (*MockComplaintRepo, *MockCustomerRepo, *MockNotificationRepo, *MockEmailService, ComplaintService) {
	complaintRepo := new(MockComplaintRepo)
	customerRepo := new(MockCustomerRepo)
	notificationRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewComplaintService(complaintRepo, customerRepo, notificationRepo, emailSvc)
	return complaintRepo, customerRepo, notificationRepo, emailSvc, svc
}

func TestComplaintService_OpenComplaint(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		complaintRepo, customerRepo, notificationRepo, _, svc := newComplaintFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		complaintRepo.On("Create", ctx, mock.Anything).Return(nil)
		notificationRepo.On("Create", ctx, mock.Anything).Return(nil)

		complaint, err := svc.OpenComplaint(ctx, "cust-1", "  No connectivity  ", "Link down since morning")

		assert.NoError(t, err)
		assert.NotEmpty(t, complaint.ID)
		assert.Equal(t, "No connectivity", complaint.Subject)
		assert.Equal(t, "Asha Rao", complaint.CustomerName)
		assert.Equal(t, domain.ComplaintStatusOpen, complaint.Status)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		complaintRepo, _, _, _, svc := newComplaintFixture()

		_, err := svc.OpenComplaint(ctx, "cust-1", "   ", "detail")
		assert.Error(t, err)
		complaintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CustomerNotFound", func(t *testing.T) {
		_, customerRepo, _, _, svc := newComplaintFixture()

		customerRepo.On("GetByID", ctx, "missing").Return(nil, errors.New("not found"))

		_, err := svc.OpenComplaint(ctx, "missing", "No connectivity", "")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvedSetsTimestampAndEmails", func(t *testing.T) {
		complaintRepo, customerRepo, _, emailSvc, svc := newComplaintFixture()

		complaintRepo.On("GetByID", ctx, "comp-1").Return(&domain.Complaint{
			ID:         "comp-1",
			CustomerID: "cust-1",
			Subject:    "No connectivity",
			Status:     domain.ComplaintStatusOpen,
		}, nil)
		complaintRepo.On("Update", ctx, mock.Anything).Return(nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		emailSvc.On("SendComplaintStatusUpdate", ctx, "asha@example.com", "Asha Rao", "No connectivity", "RESOLVED").Return(nil)

		complaint, err := svc.UpdateStatus(ctx, "comp-1", domain.ComplaintStatusResolved)

		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
		assert.NotNil(t, complaint.ResolvedAt)
		emailSvc.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		complaintRepo, _, _, _, svc := newComplaintFixture()

		_, err := svc.UpdateStatus(ctx, "comp-1", "CLOSED")
		assert.Error(t, err)
		complaintRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		complaintRepo, _, _, _, svc := newComplaintFixture()

		complaintRepo.On("GetByID", ctx, "missing").Return(nil, errors.New("no document"))

		_, err := svc.UpdateStatus(ctx, "missing", domain.ComplaintStatusResolved)
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}
