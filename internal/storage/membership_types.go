package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// GetMembershipType возвращает тарифный план по названию.
func (s *Storage) GetMembershipType(ctx context.Context, name string) (*models.MembershipType, error) {
	const op = "storage.GetMembershipType"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT name, item_code, item_name, amount, currency, razorpay_plan_id
			  FROM membership_types WHERE name = $1`
	row := s.DB.QueryRowContext(ctx, query, name)

	plan := &models.MembershipType{}
	var razorpayPlanID sql.NullString
	if err := row.Scan(&plan.Name, &plan.ItemCode, &plan.ItemName, &plan.Amount,
		&plan.Currency, &razorpayPlanID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan.RazorpayPlanID = razorpayPlanID.String
	return plan, nil
}

// GetMembershipTypeByRazorpayPlanID возвращает название самого свежего
// тарифного плана с данным идентификатором плана Razorpay.
// Возвращает пустую строку, если план не найден.
func (s *Storage) GetMembershipTypeByRazorpayPlanID(ctx context.Context, planID string) (string, error) {
	const op = "storage.GetMembershipTypeByRazorpayPlanID"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT name FROM membership_types
			  WHERE razorpay_plan_id = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	var name string
	if err := s.DB.QueryRowContext(ctx, query, planID).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// CreateMembershipType сохраняет тарифный план.
func (s *Storage) CreateMembershipType(ctx context.Context, plan models.MembershipType) error {
	const op = "storage.CreateMembershipType"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO membership_types (name, item_code, item_name, amount, currency, razorpay_plan_id)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.DB.ExecContext(ctx, query,
		plan.Name, plan.ItemCode, plan.ItemName, plan.Amount, plan.Currency, plan.RazorpayPlanID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
