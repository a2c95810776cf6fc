package service

import "errors"

var (
	// ErrDuplicatePayment means the subscriber already has a payment recorded
	// for the same billing month; the submission is rejected before any record
	// is built so one cycle can never be billed twice.
	ErrDuplicatePayment = errors.New("payment already recorded for this billing month")

	// ErrSettlementConflict means another settlement for the same customer
	// committed between this submission's balance read and its write; the
	// operator must resubmit against the refreshed balances.
	ErrSettlementConflict = errors.New("customer balances changed, please resubmit")

	ErrCustomerNotFound   = errors.New("customer not found")
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
