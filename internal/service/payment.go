package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ispdesk-backend/internal/billing"
	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type paymentService struct {
	paymentRepo      repository.PaymentRepository
	customerRepo     repository.CustomerRepository
	providerRepo     repository.ProviderRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
	defaultRate      string
	defaultTag       string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	providerRepo repository.ProviderRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
	defaultRate string,
	defaultTag string,
) PaymentService {
	return &paymentService{
		paymentRepo:      paymentRepo,
		customerRepo:     customerRepo,
		providerRepo:     providerRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
		defaultRate:      defaultRate,
		defaultTag:       defaultTag,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, in billing.RecordInput) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.RecordPayment", "customer_id", in.CustomerID)

	customer, err := s.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "customer_id", in.CustomerID)
		return nil, ErrCustomerNotFound
	}

	paidDate, err := billing.ParsePaidDate(in.PaidDate)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "customer_id", in.CustomerID)
		return nil, err
	}

	// One payment per subscriber per billing month.
	billingMonth := paidDate.Format("2006-01")
	exists, err := s.paymentRepo.ExistsForMonth(ctx, customer.SubscriberID, billingMonth)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "customer_id", in.CustomerID)
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if exists {
		return nil, ErrDuplicatePayment
	}

	// Fill submission gaps from the customer record before building.
	if in.SubscriberID == "" {
		in.SubscriberID = customer.SubscriberID
	}
	if in.CustomerName == "" {
		in.CustomerName = customer.Name
	}
	if in.MobileNo == "" {
		in.MobileNo = customer.MobileNo
	}
	if in.Email == "" {
		in.Email = customer.Email
	}
	if in.PlanName == "" {
		in.PlanName = customer.PlanName
	}
	if in.Source == "" && customer.ProviderTag != "" {
		in.Source = customer.ProviderTag
	}

	state := customer.BalanceState()
	rec, err := billing.Reconcile(state, billing.ReconcileInput{
		BillAmount:     billing.ParseAmount(in.BillAmount),
		UseWallet:      in.UseWallet,
		ReceivedAmount: billing.ParseAmount(in.ReceivedAmount),
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "customer_id", in.CustomerID)
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	// A missing provider config must not block the payment; the builder
	// falls back to the default commission rate.
	rateRaw := ""
	source := billing.ResolveSource(in.Source, in.SourceFilter, s.defaultTag)
	if provider, perr := s.providerRepo.GetByTag(ctx, source); perr == nil {
		rateRaw = provider.CommissionPercent
	} else {
		logger.Warn("Commission rate lookup failed, using default",
			"provider_tag", source, "default_rate", s.defaultRate, "error", perr)
	}

	payment, err := billing.BuildPaymentRecord(in, rateRaw, s.defaultRate, s.defaultTag, rec)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "customer_id", in.CustomerID)
		return nil, err
	}

	settlement := repository.Settlement{
		CustomerID:         customer.ID,
		ReadWalletBalance:  state.WalletBalance,
		ReadPendingAmount:  state.PendingAmount,
		FinalWalletBalance: rec.FinalWalletBalance,
		FinalPendingAmount: rec.FinalPendingAmount,
		RenewalDate:        payment.RenewalDate.Format("2006-01-02"),
		Status:             domain.CustomerStatusActive,
	}
	if err := s.paymentRepo.CreateWithSettlement(ctx, payment, settlement); err != nil {
		// Nothing committed: the reconciliation result is discarded here and
		// the customer's stored balances are untouched.
		logger.ExitMethodWithError("paymentService.RecordPayment", err,
			"customer_id", in.CustomerID, "payment_id", payment.ID)
		switch {
		case errors.Is(err, repository.ErrStaleBalance):
			return nil, ErrSettlementConflict
		case errors.Is(err, repository.ErrDuplicateBillingMonth):
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	// Post-commit notifications are best effort.
	notification := &domain.Notification{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Title:      "Payment Received",
		Message: fmt.Sprintf("Received %s from %s for %s (renewal %s)",
			payment.ReceivedAmount.StringFixed(2), payment.CustomerName,
			payment.BillingMonth, settlement.RenewalDate),
		Attributes: map[string]string{
			"topic":       "payment_received",
			"payment_id":  payment.ID,
			"source":      payment.Source,
			"bill_amount": payment.BillAmount.String(),
		},
	}
	_ = s.notificationRepo.Create(ctx, notification)

	if payment.Email != "" {
		_ = s.emailSvc.SendPaymentReceipt(ctx, payment.Email, payment.CustomerName, payment)
	}

	logger.ExitMethod("paymentService.RecordPayment",
		"payment_id", payment.ID,
		"used_wallet", payment.UsedWalletAmount.String(),
		"final_pending", payment.FinalPendingAmount.String(),
		"final_wallet", payment.FinalWalletBalance.String())
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListCustomerPayments(ctx context.Context, customerID string) ([]domain.Payment, error) {
	logger.EnterMethod("paymentService.ListCustomerPayments", "customer_id", customerID)
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.ListCustomerPayments", err, "customer_id", customerID)
		return nil, err
	}
	logger.ExitMethod("paymentService.ListCustomerPayments", "customer_id", customerID, "count", len(payments))
	return payments, nil
}

func (s *paymentService) MonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error) {
	logger.EnterMethod("paymentService.MonthlySummary", "month", month)

	payments, err := s.paymentRepo.ListByMonth(ctx, month)
	if err != nil {
		logger.ExitMethodWithError("paymentService.MonthlySummary", err, "month", month)
		return nil, err
	}

	summary := &domain.MonthlySummary{
		Month:           month,
		PaymentCount:    len(payments),
		TotalBilled:     decimal.Zero,
		TotalCollected:  decimal.Zero,
		TotalCommission: decimal.Zero,
		TotalPending:    decimal.Zero,
	}
	for _, p := range payments {
		summary.TotalBilled = summary.TotalBilled.Add(p.BillAmount)
		summary.TotalCollected = summary.TotalCollected.Add(p.ReceivedAmount).Add(p.UsedWalletAmount)
		summary.TotalCommission = summary.TotalCommission.Add(p.Commission)
		summary.TotalPending = summary.TotalPending.Add(p.NewPendingAmount)
	}

	logger.ExitMethod("paymentService.MonthlySummary", "month", month, "count", summary.PaymentCount)
	return summary, nil
}
