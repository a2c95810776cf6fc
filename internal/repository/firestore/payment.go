package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type paymentDoc struct {
	CustomerID   string `firestore:"customer_id"`
	SubscriberID string `firestore:"subscriber_id"`
	CustomerName string `firestore:"customer_name"`
	MobileNo     string `firestore:"mobile_no"`
	Email        string `firestore:"email"`
	Source       string `firestore:"source"`
	PlanName     string `firestore:"plan_name"`

	BillAmount     string `firestore:"bill_amount"`
	ReceivedAmount string `firestore:"received_amount"`
	Commission     string `firestore:"commission"`

	UsedWalletAmount   string `firestore:"used_wallet_amount"`
	NewPendingAmount   string `firestore:"new_pending_amount"`
	NewExcessToWallet  string `firestore:"new_excess_to_wallet"`
	FinalWalletBalance string `firestore:"final_wallet_balance"`
	FinalPendingAmount string `firestore:"final_pending_amount"`

	ModeOfPayment string    `firestore:"mode_of_payment"`
	Status        string    `firestore:"status"`
	BillingMonth  string    `firestore:"billing_month"`
	PaidDate      time.Time `firestore:"paid_date"`
	RenewalDate   time.Time `firestore:"renewal_date"`
	CreatedAt     time.Time `firestore:"created_at"`
}

func (d *paymentDoc) toDomain(id string) *domain.Payment {
	return &domain.Payment{
		ID:           id,
		CustomerID:   d.CustomerID,
		SubscriberID: d.SubscriberID,
		CustomerName: d.CustomerName,
		MobileNo:     d.MobileNo,
		Email:        d.Email,
		Source:       d.Source,
		PlanName:     d.PlanName,

		BillAmount:     amountFromDoc(d.BillAmount),
		ReceivedAmount: amountFromDoc(d.ReceivedAmount),
		Commission:     amountFromDoc(d.Commission),

		UsedWalletAmount:   amountFromDoc(d.UsedWalletAmount),
		NewPendingAmount:   amountFromDoc(d.NewPendingAmount),
		NewExcessToWallet:  amountFromDoc(d.NewExcessToWallet),
		FinalWalletBalance: amountFromDoc(d.FinalWalletBalance),
		FinalPendingAmount: amountFromDoc(d.FinalPendingAmount),

		ModeOfPayment: d.ModeOfPayment,
		Status:        domain.PaymentStatus(d.Status),
		BillingMonth:  d.BillingMonth,
		PaidDate:      d.PaidDate,
		RenewalDate:   d.RenewalDate,
		CreatedAt:     d.CreatedAt,
	}
}

func paymentToDoc(p *domain.Payment) *paymentDoc {
	return &paymentDoc{
		CustomerID:   p.CustomerID,
		SubscriberID: p.SubscriberID,
		CustomerName: p.CustomerName,
		MobileNo:     p.MobileNo,
		Email:        p.Email,
		Source:       p.Source,
		PlanName:     p.PlanName,

		BillAmount:     p.BillAmount.String(),
		ReceivedAmount: p.ReceivedAmount.String(),
		Commission:     p.Commission.String(),

		UsedWalletAmount:   p.UsedWalletAmount.String(),
		NewPendingAmount:   p.NewPendingAmount.String(),
		NewExcessToWallet:  p.NewExcessToWallet.String(),
		FinalWalletBalance: p.FinalWalletBalance.String(),
		FinalPendingAmount: p.FinalPendingAmount.String(),

		ModeOfPayment: p.ModeOfPayment,
		Status:        string(p.Status),
		BillingMonth:  p.BillingMonth,
		PaidDate:      p.PaidDate,
		RenewalDate:   p.RenewalDate,
		CreatedAt:     p.CreatedAt,
	}
}

type paymentRepository struct {
	client *firestore.Client
}

func NewPaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &paymentRepository{client: client}
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	snap, err := r.client.Collection(colPayments).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment %s not found", id)
		}
		return nil, err
	}
	var doc paymentDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode payment %s: %w", id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	q := r.client.Collection(colPayments).
		Where("customer_id", "==", customerID).
		OrderBy("paid_date", firestore.Desc)
	return r.collect(q.Documents(ctx))
}

func (r *paymentRepository) ListByMonth(ctx context.Context, billingMonth string) ([]domain.Payment, error) {
	q := r.client.Collection(colPayments).
		Where("billing_month", "==", billingMonth)
	return r.collect(q.Documents(ctx))
}

// monthKey identifies one subscriber's billing month in payment_months.
func monthKey(subscriberID, billingMonth string) string {
	return subscriberID + "_" + billingMonth
}

// paymentMonthDoc reserves a subscriber's billing month. Creating it inside
// the settlement transaction makes the one-payment-per-month rule hold even
// for concurrent submissions: the second Create fails on the same key.
type paymentMonthDoc struct {
	PaymentID  string    `firestore:"payment_id"`
	CustomerID string    `firestore:"customer_id"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func (r *paymentRepository) ExistsForMonth(ctx context.Context, subscriberID, billingMonth string) (bool, error) {
	_, err := r.client.Collection(colPaymentMonths).Doc(monthKey(subscriberID, billingMonth)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// balancesMatch reports whether the stored customer balances equal the read
// snapshot a settlement was computed from.
func balancesMatch(doc *customerDoc, settlement repository.Settlement) bool {
	return amountFromDoc(doc.WalletBalance).Equal(settlement.ReadWalletBalance) &&
		amountFromDoc(doc.PendingAmount).Equal(settlement.ReadPendingAmount)
}

// CreateWithSettlement writes the payment document, the billing-month
// reservation, and the customer's settled balance fields in one Firestore
// transaction. The customer is re-read inside the transaction and compared
// against the balances the reconciliation was computed from; a mismatch
// (another settlement committed in between) fails with ErrStaleBalance
// instead of overwriting the fresher balances with stale arithmetic.
func (r *paymentRepository) CreateWithSettlement(ctx context.Context, payment *domain.Payment, settlement repository.Settlement) error {
	logger.FirestoreCall("CreateWithSettlement", colPayments,
		"payment_id", payment.ID, "customer_id", settlement.CustomerID)

	customerRef := r.client.Collection(colCustomers).Doc(settlement.CustomerID)
	paymentRef := r.client.Collection(colPayments).Doc(payment.ID)
	monthRef := r.client.Collection(colPaymentMonths).Doc(monthKey(payment.SubscriberID, payment.BillingMonth))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(customerRef)
		if err != nil {
			return fmt.Errorf("customer %s not found for settlement: %w", settlement.CustomerID, err)
		}
		var doc customerDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("failed to decode customer %s: %w", settlement.CustomerID, err)
		}
		if !balancesMatch(&doc, settlement) {
			return repository.ErrStaleBalance
		}

		if err := tx.Create(monthRef, &paymentMonthDoc{
			PaymentID:  payment.ID,
			CustomerID: settlement.CustomerID,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		if err := tx.Create(paymentRef, paymentToDoc(payment)); err != nil {
			return err
		}

		return tx.Update(customerRef, []firestore.Update{
			{Path: "wallet_balance", Value: settlement.FinalWalletBalance.String()},
			{Path: "pending_amount", Value: settlement.FinalPendingAmount.String()},
			{Path: "renewal_date", Value: settlement.RenewalDate},
			{Path: "status", Value: string(settlement.Status)},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if status.Code(err) == codes.AlreadyExists {
		// Only the month reservation can collide; payment ids are uuids.
		err = repository.ErrDuplicateBillingMonth
	}

	logger.FirestoreResult("CreateWithSettlement", colPayments, err,
		"payment_id", payment.ID, "customer_id", settlement.CustomerID)
	return err
}

func (r *paymentRepository) collect(it *firestore.DocumentIterator) ([]domain.Payment, error) {
	defer it.Stop()
	var payments []domain.Payment
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc paymentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		payments = append(payments, *doc.toDomain(snap.Ref.ID))
	}
	return payments, nil
}
