package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ispdesk-backend/internal/domain"
)

// sourceWildcard is the "show everything" value of the back-office provider
// filter; it can never be persisted as a payment source.
const sourceWildcard = "All"

// RecordInput carries the raw, loosely-typed fields of a payment submission.
// Every fallback the builder applies is explicit here rather than scattered
// through the entry form.
type RecordInput struct {
	CustomerID   string
	SubscriberID string
	CustomerName string
	MobileNo     string
	Email        string
	PlanName     string

	// Source is the explicit provider tag on the submission; SourceFilter is
	// the currently-active provider filter context used as its fallback.
	Source       string
	SourceFilter string

	BillAmount     string // raw form value
	ReceivedAmount string // raw form value
	UseWallet      bool
	ModeOfPayment  string
	PaidDate       string // yyyy-mm-dd
}

// ResolveSource picks the persisted provider tag: the explicit value if
// present, otherwise the active filter, or defaultTag when the filter is the
// wildcard or empty.
func ResolveSource(source, filter, defaultTag string) string {
	if s := strings.TrimSpace(source); s != "" {
		return s
	}
	if f := strings.TrimSpace(filter); f != "" && !strings.EqualFold(f, sourceWildcard) {
		return f
	}
	return defaultTag
}

// BuildPaymentRecord assembles the persisted payment entry from the
// reconciliation outcome plus the defaults for every optional field. It has
// no side effects; persistence and the customer balance write belong to the
// caller.
func BuildPaymentRecord(in RecordInput, rateRaw, defaultRate, defaultTag string, rec ReconcileResult) (*domain.Payment, error) {
	paidDate, err := ParsePaidDate(in.PaidDate)
	if err != nil {
		return nil, err
	}

	source := ResolveSource(in.Source, in.SourceFilter, defaultTag)

	renewalDate, err := ProjectRenewal(paidDate, source)
	if err != nil {
		return nil, err
	}

	billAmount := ParseAmount(in.BillAmount)
	commission := ComputeCommission(billAmount, ResolveRate(rateRaw, defaultRate))

	status := domain.PaymentStatusPaid
	if rec.FinalPendingAmount.IsPositive() {
		status = domain.PaymentStatusUnpaid
	}

	return &domain.Payment{
		ID:           uuid.NewString(),
		CustomerID:   in.CustomerID,
		SubscriberID: in.SubscriberID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		MobileNo:     strings.TrimSpace(in.MobileNo),
		Email:        strings.TrimSpace(in.Email),
		Source:       source,
		PlanName:     strings.TrimSpace(in.PlanName),

		BillAmount:     billAmount,
		ReceivedAmount: ParseAmount(in.ReceivedAmount),
		Commission:     commission,

		UsedWalletAmount:   rec.UsedWalletAmount,
		NewPendingAmount:   rec.NewPendingAmount,
		NewExcessToWallet:  rec.NewExcessToWallet,
		FinalWalletBalance: rec.FinalWalletBalance,
		FinalPendingAmount: rec.FinalPendingAmount,

		ModeOfPayment: strings.TrimSpace(in.ModeOfPayment),
		Status:        status,
		BillingMonth:  paidDate.Format("2006-01"),
		PaidDate:      paidDate,
		RenewalDate:   renewalDate,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
