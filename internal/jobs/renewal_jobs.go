package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
)

const dateLayout = "2006-01-02"

// SendRenewalReminders emails every active customer whose renewal date
// falls within the configured reminder window and records an in-app
// notification alongside each email.
func (jr *JobRunner) SendRenewalReminders() {
	jr.runWithRecovery("send_renewal_reminders", func() {
		ctx := context.Background()
		days := jr.config.Billing.RenewalReminderDays
		cutoff := time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)

		customers, err := jr.store.CustomerRepository.ListRenewalsDueBy(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list customers due for renewal", "cutoff", cutoff, "error", err)
			return
		}

		sent := 0
		for _, c := range customers {
			if c.RenewalDate == nil || c.Email == "" {
				continue
			}
			renewal := c.RenewalDate.Format(dateLayout)
			if err := jr.emailSvc.SendRenewalReminder(ctx, c.Email, c.Name, c.PlanName, renewal); err != nil {
				logger.Warn("Failed to send renewal reminder", "customer_id", c.ID, "error", err)
				continue
			}
			_ = jr.store.NotificationRepository.Create(ctx, &domain.Notification{
				ID:         uuid.NewString(),
				CustomerID: c.ID,
				Title:      "Renewal Reminder",
				Message:    "Your plan " + c.PlanName + " renews on " + renewal + ". Please pay before the due date.",
				Attributes: map[string]string{"renewal_date": renewal},
				CreatedAt:  time.Now().UTC(),
			})
			sent++
		}
		logger.Info("Renewal reminders processed", "due", len(customers), "sent", sent)
	})
}

// MarkExpiredCustomers flips active customers whose renewal date has
// already passed to EXPIRED so the front office sees lapsed accounts.
func (jr *JobRunner) MarkExpiredCustomers() {
	jr.runWithRecovery("mark_expired_customers", func() {
		ctx := context.Background()
		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(dateLayout)

		customers, err := jr.store.CustomerRepository.ListRenewalsDueBy(ctx, yesterday)
		if err != nil {
			logger.Error("Failed to list lapsed customers", "cutoff", yesterday, "error", err)
			return
		}

		expired := 0
		for _, c := range customers {
			c.Status = domain.CustomerStatusExpired
			c.UpdatedAt = time.Now().UTC()
			if err := jr.store.CustomerRepository.Update(ctx, &c); err != nil {
				logger.Warn("Failed to mark customer expired", "customer_id", c.ID, "error", err)
				continue
			}
			expired++
		}
		logger.Info("Expired customers processed", "lapsed", len(customers), "expired", expired)
	})
}
