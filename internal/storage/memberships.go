package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// CreateMembership вставляет новую запись членства и возвращает её ID.
func (s *Storage) CreateMembership(ctx context.Context, m models.Membership) (int, error) {
	const op = "storage.CreateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO memberships (member_uid, membership_type, status, from_date,
			      to_date, paid, currency, amount, payment_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		m.MemberUID, m.MembershipType, m.Status, m.FromDate, m.ToDate,
		m.Paid, m.Currency, m.Amount, m.PaymentID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMembership возвращает членство по его ID или nil, если членство не найдено.
func (s *Storage) GetMembership(ctx context.Context, id int) (*models.Membership, error) {
	const op = "storage.GetMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, membership_type, status, from_date, to_date,
			      paid, currency, amount, payment_id, invoice_id
			  FROM memberships WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetLastActiveMembership возвращает самое свежее действующее членство
// участника (статус Current, срок не истёк) или nil, если такого нет.
func (s *Storage) GetLastActiveMembership(ctx context.Context, memberUID string) (*models.Membership, error) {
	const op = "storage.GetLastActiveMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, membership_type, status, from_date, to_date,
			      paid, currency, amount, payment_id, invoice_id
			  FROM memberships
			  WHERE member_uid = $1 AND status = $2 AND to_date >= CURRENT_DATE
			  ORDER BY to_date DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, memberUID, models.MembershipStatusCurrent)

	m, err := scanMembership(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMemberships возвращает членства участника с пагинацией,
// от новых к старым.
func (s *Storage) ListMemberships(ctx context.Context, memberUID string, limit, offset int) ([]*models.Membership, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, membership_type, status, from_date, to_date,
			      paid, currency, amount, payment_id, invoice_id
			  FROM memberships
			  WHERE member_uid = $1
			  ORDER BY from_date DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, memberUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Membership
	for rows.Next() {
		m, err := scanMembershipRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllMemberships возвращает членства всех участников с пагинацией.
func (s *Storage) ListAllMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	const op = "storage.ListAllMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, membership_type, status, from_date, to_date,
			      paid, currency, amount, payment_id, invoice_id
			  FROM memberships
			  ORDER BY from_date DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Membership
	for rows.Next() {
		m, err := scanMembershipRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanMembership(row *sql.Row) (*models.Membership, error) {
	m := &models.Membership{}
	var paymentID sql.NullString
	var invoiceID sql.NullInt64
	if err := row.Scan(&m.ID, &m.MemberUID, &m.MembershipType, &m.Status, &m.FromDate,
		&m.ToDate, &m.Paid, &m.Currency, &m.Amount, &paymentID, &invoiceID); err != nil {
		return nil, err
	}
	m.PaymentID = paymentID.String
	m.InvoiceID = int(invoiceID.Int64)
	return m, nil
}

func scanMembershipRows(rows *sql.Rows) (*models.Membership, error) {
	m := &models.Membership{}
	var paymentID sql.NullString
	var invoiceID sql.NullInt64
	if err := rows.Scan(&m.ID, &m.MemberUID, &m.MembershipType, &m.Status, &m.FromDate,
		&m.ToDate, &m.Paid, &m.Currency, &m.Amount, &paymentID, &invoiceID); err != nil {
		return nil, err
	}
	m.PaymentID = paymentID.String
	m.InvoiceID = int(invoiceID.Int64)
	return m, nil
}
