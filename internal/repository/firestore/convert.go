package firestore

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money fields are persisted as decimal strings; Firestore has no decimal
// type and floats drift. A value that fails to parse reads back as zero, the
// same conservative default the billing layer applies to raw form input.
func amountFromDoc(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func dateFromDoc(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func dateToDoc(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
