package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ispdesk-backend/internal/billing"
	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:            "cust-1",
		SubscriberID:  "sub-99",
		Name:          "Asha Rao",
		MobileNo:      "9876543210",
		Email:         "asha@example.com",
		ProviderTag:   "BSNL",
		PlanName:      "Fiber 100",
		MonthlyBill:   dec("500"),
		WalletBalance: dec("200"),
		PendingAmount: dec("0"),
		Status:        domain.CustomerStatusActive,
	}
}

func newPaymentFixture() (*MockPaymentRepo, *MockCustomerRepo, *MockProviderRepo, *MockNotificationRepo, *MockEmailService, PaymentService) {
	paymentRepo := new(MockPaymentRepo)
	customerRepo := new(MockCustomerRepo)
	providerRepo := new(MockProviderRepo)
	notificationRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewPaymentService(paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, "30", "BSNL")
	return paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, svc
}

func TestPaymentService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(false, nil)
		providerRepo.On("GetByTag", ctx, "BSNL").Return(&domain.Provider{Tag: "BSNL", CommissionPercent: "25"}, nil)
		paymentRepo.On("CreateWithSettlement", ctx, mock.Anything, mock.Anything).Return(nil)
		notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendPaymentReceipt", ctx, "asha@example.com", "Asha Rao", mock.Anything).Return(nil)

		payment, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "300",
			UseWallet:      true,
			ModeOfPayment:  "UPI",
			PaidDate:       "2024-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "cust-1", payment.CustomerID)
		assert.Equal(t, "sub-99", payment.SubscriberID, "gaps fill from the customer record")
		assert.Equal(t, "BSNL", payment.Source)
		assert.True(t, payment.UsedWalletAmount.Equal(dec("200")))
		assert.True(t, payment.FinalWalletBalance.IsZero())
		assert.True(t, payment.FinalPendingAmount.IsZero())
		assert.True(t, payment.Commission.Equal(dec("125")), "provider rate overrides the default")
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
		assert.Equal(t, "2024-01", payment.BillingMonth)
		assert.Equal(t, "2024-02-15", payment.RenewalDate.Format("2006-01-02"))

		paymentRepo.AssertExpectations(t)
		notificationRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("SettlementPassedToRepo", func(t *testing.T) {
		paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, svc := newPaymentFixture()

		customer := testCustomer()
		customer.PendingAmount = dec("50")
		customerRepo.On("GetByID", ctx, "cust-1").Return(customer, nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(false, nil)
		providerRepo.On("GetByTag", ctx, "BSNL").Return(nil, errors.New("no provider doc"))

		var captured repository.Settlement
		paymentRepo.On("CreateWithSettlement", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(repository.Settlement)
			}).Return(nil)
		notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendPaymentReceipt", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		payment, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "400",
			PaidDate:       "2024-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "cust-1", captured.CustomerID)
		assert.True(t, captured.ReadWalletBalance.Equal(dec("200")), "snapshot the reconciliation read")
		assert.True(t, captured.ReadPendingAmount.Equal(dec("50")))
		assert.True(t, captured.FinalPendingAmount.Equal(dec("150")))
		assert.True(t, captured.FinalWalletBalance.Equal(dec("200")), "wallet untouched when flag is off")
		assert.Equal(t, "2024-02-15", captured.RenewalDate)
		assert.Equal(t, domain.CustomerStatusActive, captured.Status)
		assert.Equal(t, domain.PaymentStatusUnpaid, payment.Status)
		assert.True(t, payment.Commission.Equal(dec("150")), "lookup failure falls back to the default rate")
	})

	t.Run("StaleBalanceAborts", func(t *testing.T) {
		paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(false, nil)
		providerRepo.On("GetByTag", ctx, "BSNL").Return(&domain.Provider{Tag: "BSNL", CommissionPercent: "30"}, nil)
		paymentRepo.On("CreateWithSettlement", ctx, mock.Anything, mock.Anything).Return(repository.ErrStaleBalance)

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "500",
			UseWallet:      true,
			PaidDate:       "2024-01-15",
		})

		assert.ErrorIs(t, err, ErrSettlementConflict)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MonthReservedAtCommit", func(t *testing.T) {
		paymentRepo, customerRepo, providerRepo, _, _, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(false, nil)
		providerRepo.On("GetByTag", ctx, "BSNL").Return(&domain.Provider{Tag: "BSNL", CommissionPercent: "30"}, nil)
		paymentRepo.On("CreateWithSettlement", ctx, mock.Anything, mock.Anything).Return(repository.ErrDuplicateBillingMonth)

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "500",
			PaidDate:       "2024-01-15",
		})

		assert.ErrorIs(t, err, ErrDuplicatePayment)
	})

	t.Run("DuplicateMonth", func(t *testing.T) {
		paymentRepo, customerRepo, _, _, _, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(true, nil)

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "500",
			PaidDate:       "2024-01-20",
		})

		assert.ErrorIs(t, err, ErrDuplicatePayment)
		paymentRepo.AssertNotCalled(t, "CreateWithSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CustomerNotFound", func(t *testing.T) {
		_, customerRepo, _, _, _, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "missing").Return(nil, errors.New("not found"))

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID: "missing",
			PaidDate:   "2024-01-20",
		})

		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("InvalidPaidDate", func(t *testing.T) {
		paymentRepo, customerRepo, _, _, _, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID: "cust-1",
			PaidDate:   "someday",
		})

		assert.ErrorIs(t, err, billing.ErrInvalidDate)
		paymentRepo.AssertNotCalled(t, "ExistsForMonth", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PersistFailureSendsNothing", func(t *testing.T) {
		paymentRepo, customerRepo, providerRepo, notificationRepo, emailSvc, svc := newPaymentFixture()

		customerRepo.On("GetByID", ctx, "cust-1").Return(testCustomer(), nil)
		paymentRepo.On("ExistsForMonth", ctx, "sub-99", "2024-01").Return(false, nil)
		providerRepo.On("GetByTag", ctx, "BSNL").Return(&domain.Provider{Tag: "BSNL", CommissionPercent: "30"}, nil)
		paymentRepo.On("CreateWithSettlement", ctx, mock.Anything, mock.Anything).Return(errors.New("transaction aborted"))

		_, err := svc.RecordPayment(ctx, billing.RecordInput{
			CustomerID:     "cust-1",
			BillAmount:     "500",
			ReceivedAmount: "500",
			PaidDate:       "2024-01-15",
		})

		assert.Error(t, err)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_MonthlySummary(t *testing.T) {
	ctx := context.Background()
	paymentRepo, _, _, _, _, svc := newPaymentFixture()

	payments := []domain.Payment{
		{BillAmount: dec("500"), ReceivedAmount: dec("300"), UsedWalletAmount: dec("200"), Commission: dec("150"), NewPendingAmount: dec("0")},
		{BillAmount: dec("400"), ReceivedAmount: dec("300"), UsedWalletAmount: dec("0"), Commission: dec("120"), NewPendingAmount: dec("100")},
	}
	paymentRepo.On("ListByMonth", ctx, "2024-01").Return(payments, nil)

	summary, err := svc.MonthlySummary(ctx, "2024-01")
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.PaymentCount)
	assert.True(t, summary.TotalBilled.Equal(dec("900")))
	assert.True(t, summary.TotalCollected.Equal(dec("800")), "collected counts cash plus wallet draw")
	assert.True(t, summary.TotalCommission.Equal(dec("270")))
	assert.True(t, summary.TotalPending.Equal(dec("100")))
}
