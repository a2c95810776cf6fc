package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil, "to", to)
	return nil
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name string, payment *domain.Payment) error {
	subject := fmt.Sprintf("Payment Receipt - %s", payment.BillingMonth)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe have received your payment.\n\nBill amount: %s\nAmount received: %s\nWallet credit used: %s\nRemaining dues: %s\nWallet balance: %s\nNext renewal: %s\n\nThank you.",
		name,
		payment.BillAmount.StringFixed(2),
		payment.ReceivedAmount.StringFixed(2),
		payment.UsedWalletAmount.StringFixed(2),
		payment.FinalPendingAmount.StringFixed(2),
		payment.FinalWalletBalance.StringFixed(2),
		payment.RenewalDate.Format("2006-01-02"),
	)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendRenewalReminder(ctx context.Context, email, name, planName, renewalDate string) error {
	subject := "Your plan is due for renewal"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour plan %s is due for renewal on %s. Please make a payment to avoid interruption.\n\nThank you.",
		name, planName, renewalDate,
	)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendComplaintStatusUpdate(ctx context.Context, email, name, subject, status string) error {
	mailSubject := fmt.Sprintf("Complaint Update: %s", subject)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour complaint %q is now: %s.\n\nThank you.",
		name, subject, status,
	)
	return s.send(email, name, mailSubject, body)
}
