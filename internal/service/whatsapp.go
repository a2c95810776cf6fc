package service

import (
	"fmt"
	"net/url"
	"strings"

	"ispdesk-backend/internal/domain"
)

// WhatsAppReceiptLink composes a wa.me deep link with a prefilled payment
// acknowledgment. Dispatch happens in the operator's WhatsApp client; this
// backend only prepares the message.
func WhatsAppReceiptLink(payment *domain.Payment) string {
	mobile := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, payment.MobileNo)
	if mobile == "" {
		return ""
	}

	text := fmt.Sprintf(
		"Hello %s, we received your payment of %s for %s. Remaining dues: %s. Wallet balance: %s. Next renewal: %s. Thank you!",
		payment.CustomerName,
		payment.ReceivedAmount.StringFixed(2),
		payment.BillingMonth,
		payment.FinalPendingAmount.StringFixed(2),
		payment.FinalWalletBalance.StringFixed(2),
		payment.RenewalDate.Format("2006-01-02"),
	)
	return fmt.Sprintf("https://wa.me/%s?text=%s", mobile, url.QueryEscape(text))
}
