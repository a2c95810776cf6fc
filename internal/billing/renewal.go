package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for an absent or malformed paid date. Unlike
// money fields there is no safe default here: a silently defaulted renewal
// date corrupts every future billing cycle.
var ErrInvalidDate = errors.New("invalid paid date")

// providerTagBSNL customers renew on a calendar-month cycle; every other
// provider renews on a flat 30-day cycle.
const providerTagBSNL = "BSNL"

const renewalCycleDays = 30

// ParsePaidDate parses a yyyy-mm-dd paid date in UTC.
func ParsePaidDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// ProjectRenewal derives the next renewal date from the paid date and the
// provider's billing cycle rule. BSNL adds one calendar month using Go's
// AddDate normalization, so month-end overflow rolls into the following month
// (2024-01-31 projects to 2024-03-02).
func ProjectRenewal(paidDate time.Time, providerTag string) (time.Time, error) {
	if paidDate.IsZero() {
		return time.Time{}, ErrInvalidDate
	}
	if strings.EqualFold(strings.TrimSpace(providerTag), providerTagBSNL) {
		return paidDate.AddDate(0, 1, 0), nil
	}
	return paidDate.AddDate(0, 0, renewalCycleDays), nil
}
