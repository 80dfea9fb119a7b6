package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// CreateSubmittedInvoice в одной транзакции создаёт счёт, переводит его
// в статус Submitted и привязывает к членству. Возвращает ID счёта.
// Частично созданный счёт не остаётся привязанным: при любой ошибке
// транзакция откатывается.
func (s *Storage) CreateSubmittedInvoice(ctx context.Context, inv models.Invoice) (int, error) {
	const op = "storage.CreateSubmittedInvoice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO invoices (customer_id, company, debit_account, currency, status,
			      item_code, quantity, rate, total, membership_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var invoiceID int
	err = tx.QueryRowContext(ctx, query,
		inv.CustomerID, inv.Company, inv.DebitAccount, inv.Currency, models.InvoiceStatusDraft,
		inv.ItemCode, inv.Quantity, inv.Rate, inv.Total, inv.MembershipID).Scan(&invoiceID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE invoices SET status = $1 WHERE id = $2`,
		models.InvoiceStatusSubmitted, invoiceID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE memberships SET invoice_id = $1 WHERE id = $2`,
		invoiceID, inv.MembershipID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return invoiceID, nil
}

// GetInvoice возвращает счёт по его ID.
func (s *Storage) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	const op = "storage.GetInvoice"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, company, debit_account, currency, status,
			      item_code, quantity, rate, total, membership_id, created_at
			  FROM invoices WHERE id = $1`
	inv := &models.Invoice{}
	var createdAt sql.NullTime
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.Company, &inv.DebitAccount, &inv.Currency,
		&inv.Status, &inv.ItemCode, &inv.Quantity, &inv.Rate, &inv.Total,
		&inv.MembershipID, &createdAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if createdAt.Valid {
		inv.CreatedAt = createdAt.Time
	}
	return inv, nil
}
