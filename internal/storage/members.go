package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// CreateMember сохраняет нового участника и возвращает его UID.
func (s *Storage) CreateMember(ctx context.Context, member models.Member) (string, error) {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO members (full_name, email, membership_type, customer_id,
			      subscription_id, subscription_activated)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		member.FullName, member.Email, member.MembershipType, member.CustomerID,
		member.SubscriptionID, member.SubscriptionActivated).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetMember возвращает участника по UID или nil, если участник не найден.
func (s *Storage) GetMember(ctx context.Context, uid string) (*models.Member, error) {
	const op = "storage.GetMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, membership_type, customer_id, subscription_id,
			      subscription_start, subscription_end, subscription_activated
			  FROM members WHERE uid = $1`
	member, err := s.scanMember(s.DB.QueryRowContext(ctx, query, uid), op)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// GetMemberByEmail возвращает участника по email или nil, если участник не найден.
func (s *Storage) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	const op = "storage.GetMemberByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, membership_type, customer_id, subscription_id,
			      subscription_start, subscription_end, subscription_activated
			  FROM members WHERE email = $1`
	member, err := s.scanMember(s.DB.QueryRowContext(ctx, query, email), op)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// GetMemberBySubscription ищет участника по паре (идентификатор подписки, email).
// Возвращает nil, если участник не найден — вызов деградирует, а не падает.
func (s *Storage) GetMemberBySubscription(ctx context.Context, subscriptionID, email string) (*models.Member, error) {
	const op = "storage.GetMemberBySubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, membership_type, customer_id, subscription_id,
			      subscription_start, subscription_end, subscription_activated
			  FROM members
			  WHERE subscription_id = $1 AND email = $2
			  ORDER BY created_at DESC
			  LIMIT 1`
	member, err := s.scanMember(s.DB.QueryRowContext(ctx, query, subscriptionID, email), op)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// UpdateMemberSubscription обновляет окно активации подписки участника
// и флаг активации.
func (s *Storage) UpdateMemberSubscription(ctx context.Context, member models.Member) error {
	const op = "storage.UpdateMemberSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE members
			  SET subscription_id = $1, customer_id = $2, subscription_start = $3,
			      subscription_end = $4, subscription_activated = $5
			  WHERE uid = $6`
	_, err := s.DB.ExecContext(ctx, query,
		member.SubscriptionID, member.CustomerID, member.SubscriptionStart,
		member.SubscriptionEnd, member.SubscriptionActivated, member.UID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AddMemberComment добавляет комментарий к участнику.
func (s *Storage) AddMemberComment(ctx context.Context, memberUID, content string) error {
	const op = "storage.AddMemberComment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO member_comments (member_uid, content) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, memberUID, content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) scanMember(row *sql.Row, op string) (*models.Member, error) {
	m := &models.Member{}
	var subscriptionStart, subscriptionEnd sql.NullTime
	var fullName, membershipType, customerID, subscriptionID sql.NullString
	if err := row.Scan(&m.UID, &fullName, &m.Email, &membershipType, &customerID,
		&subscriptionID, &subscriptionStart, &subscriptionEnd, &m.SubscriptionActivated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.FullName = fullName.String
	m.MembershipType = membershipType.String
	m.CustomerID = customerID.String
	m.SubscriptionID = subscriptionID.String
	if subscriptionStart.Valid {
		m.SubscriptionStart = &subscriptionStart.Time
	}
	if subscriptionEnd.Valid {
		m.SubscriptionEnd = &subscriptionEnd.Time
	}
	return m, nil
}
