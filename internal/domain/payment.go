package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
)

// Payment is the persisted settlement record for one collection event.
// Immutable once written except for corrective edits that re-run the
// reconciliation.
type Payment struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	SubscriberID string `json:"subscriber_id"`
	CustomerName string `json:"customer_name"`
	MobileNo     string `json:"mobile_no"`
	Email        string `json:"email"`
	Source       string `json:"source"` // network-provider tag
	PlanName     string `json:"plan_name"`

	BillAmount     decimal.Decimal `json:"bill_amount"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	Commission     decimal.Decimal `json:"commission"`

	// Financial snapshot of the reconciliation outcome.
	UsedWalletAmount   decimal.Decimal `json:"used_wallet_amount"`
	NewPendingAmount   decimal.Decimal `json:"new_pending_amount"`
	NewExcessToWallet  decimal.Decimal `json:"new_excess_to_wallet"`
	FinalWalletBalance decimal.Decimal `json:"final_wallet_balance"`
	FinalPendingAmount decimal.Decimal `json:"final_pending_amount"`

	ModeOfPayment string        `json:"mode_of_payment"`
	Status        PaymentStatus `json:"status"`
	BillingMonth  string        `json:"billing_month"` // Format: 'YYYY-MM'
	PaidDate      time.Time     `json:"paid_date"`
	RenewalDate   time.Time     `json:"renewal_date"`
	CreatedAt     time.Time     `json:"created_at"`
}

// MonthlySummary aggregates one billing month for the profit-loss view.
type MonthlySummary struct {
	Month           string          `json:"month"` // Format: 'YYYY-MM'
	PaymentCount    int             `json:"payment_count"`
	TotalBilled     decimal.Decimal `json:"total_billed"`
	TotalCollected  decimal.Decimal `json:"total_collected"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalPending    decimal.Decimal `json:"total_pending"`
}
