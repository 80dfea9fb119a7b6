package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// GetSettings возвращает единственную запись настроек членств.
func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	const op = "storage.GetSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT billing_cycle, company, debit_account, send_email, send_invoice,
			      email_template_subject, email_template_body, webhook_secret
			  FROM membership_settings WHERE id = 1`
	settings := &models.Settings{}
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&settings.BillingCycle, &settings.Company, &settings.DebitAccount,
		&settings.SendEmail, &settings.SendInvoice,
		&settings.EmailTemplateSubject, &settings.EmailTemplateBody,
		&settings.WebhookSecret); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// UpdateSettings перезаписывает запись настроек членств.
func (s *Storage) UpdateSettings(ctx context.Context, settings models.Settings) error {
	const op = "storage.UpdateSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE membership_settings
			  SET billing_cycle = $1, company = $2, debit_account = $3, send_email = $4,
			      send_invoice = $5, email_template_subject = $6, email_template_body = $7,
			      webhook_secret = $8
			  WHERE id = 1`
	_, err := s.DB.ExecContext(ctx, query,
		settings.BillingCycle, settings.Company, settings.DebitAccount, settings.SendEmail,
		settings.SendInvoice, settings.EmailTemplateSubject, settings.EmailTemplateBody,
		settings.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
