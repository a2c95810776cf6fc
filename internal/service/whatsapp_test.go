package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ispdesk-backend/internal/domain"
)

func TestWhatsAppReceiptLink(t *testing.T) {
	payment := &domain.Payment{
		CustomerName:       "Asha Rao",
		MobileNo:           "+91 98765-43210",
		ReceivedAmount:     dec("500"),
		BillingMonth:       "2024-01",
		FinalPendingAmount: dec("0"),
		FinalWalletBalance: dec("200"),
		RenewalDate:        time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	}

	link := WhatsAppReceiptLink(payment)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)
	assert.Contains(t, link, "Asha+Rao")
	assert.Contains(t, link, "500.00")
	assert.Contains(t, link, "2024-02-15")
	assert.NotContains(t, link, " ", "message text must be URL encoded")
}

func TestWhatsAppReceiptLink_NoMobile(t *testing.T) {
	assert.Empty(t, WhatsAppReceiptLink(&domain.Payment{CustomerName: "Asha Rao"}))
}
