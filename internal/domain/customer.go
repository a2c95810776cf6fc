package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
	CustomerStatusExpired  CustomerStatus = "EXPIRED"
)

type Customer struct {
	ID           string `json:"id"`
	SubscriberID string `json:"subscriber_id"` // provider-assigned subscriber/user id
	Name         string `json:"name"`
	MobileNo     string `json:"mobile_no"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	ProviderTag  string `json:"provider_tag"` // e.g. "BSNL", "RMAX"
	PlanName     string `json:"plan_name"`

	MonthlyBill   decimal.Decimal `json:"monthly_bill"`
	WalletBalance decimal.Decimal `json:"wallet_balance"` // prepaid credit, never negative
	PendingAmount decimal.Decimal `json:"pending_amount"` // carried-over dues, never negative

	Status      CustomerStatus `json:"status"`
	RenewalDate *time.Time     `json:"renewal_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BalanceState is the minimal snapshot the reconciler reads.
type BalanceState struct {
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

func (c *Customer) BalanceState() BalanceState {
	return BalanceState{
		WalletBalance: c.WalletBalance,
		PendingAmount: c.PendingAmount,
	}
}
