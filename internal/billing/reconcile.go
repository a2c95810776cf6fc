package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"ispdesk-backend/internal/domain"
)

// ErrNegativeAmount is returned when a caller hands the reconciler a negative
// balance or amount. Raw form input is sanitized by ParseAmount before it gets
// here, so this only fires on programmer error.
var ErrNegativeAmount = errors.New("amount must not be negative")

// ReconcileInput is one payment-entry event.
type ReconcileInput struct {
	BillAmount     decimal.Decimal
	UseWallet      bool
	ReceivedAmount decimal.Decimal
}

// ReconcileResult is the settlement outcome. Exactly one of NewPendingAmount
// and NewExcessToWallet is non-zero: a settlement cannot simultaneously owe
// money and bank excess.
type ReconcileResult struct {
	TotalPayable       decimal.Decimal
	UsedWalletAmount   decimal.Decimal
	NewPendingAmount   decimal.Decimal
	NewExcessToWallet  decimal.Decimal
	FinalWalletBalance decimal.Decimal
	FinalPendingAmount decimal.Decimal
}

// Reconcile settles a bill against the customer's wallet credit, carried-over
// dues, and the amount actually tendered. It is a pure function: the caller
// owns writing FinalWalletBalance/FinalPendingAmount back to the customer.
//
// The current charge stacks on top of any carried-over debt. Wallet
// application is all-or-nothing per the UseWallet flag, capped at both the
// wallet balance and the total payable. Overpayment is banked back into the
// wallet; underpayment carries forward as pending.
func Reconcile(state domain.BalanceState, input ReconcileInput) (ReconcileResult, error) {
	if state.WalletBalance.IsNegative() || state.PendingAmount.IsNegative() {
		return ReconcileResult{}, ErrNegativeAmount
	}
	if input.BillAmount.IsNegative() || input.ReceivedAmount.IsNegative() {
		return ReconcileResult{}, ErrNegativeAmount
	}

	totalPayable := input.BillAmount.Add(state.PendingAmount)

	usedWallet := decimal.Zero
	netPayable := totalPayable
	if input.UseWallet && state.WalletBalance.IsPositive() {
		if state.WalletBalance.GreaterThanOrEqual(totalPayable) {
			usedWallet = totalPayable
			netPayable = decimal.Zero
		} else {
			usedWallet = state.WalletBalance
			netPayable = totalPayable.Sub(state.WalletBalance)
		}
	}

	newPending := decimal.Zero
	newExcess := decimal.Zero
	if input.ReceivedAmount.GreaterThanOrEqual(netPayable) {
		newExcess = input.ReceivedAmount.Sub(netPayable)
	} else {
		newPending = netPayable.Sub(input.ReceivedAmount)
	}

	return ReconcileResult{
		TotalPayable:       totalPayable,
		UsedWalletAmount:   usedWallet,
		NewPendingAmount:   newPending,
		NewExcessToWallet:  newExcess,
		FinalWalletBalance: state.WalletBalance.Sub(usedWallet).Add(newExcess),
		FinalPendingAmount: newPending,
	}, nil
}
