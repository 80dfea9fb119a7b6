// Package membership содержит бизнес-логику жизненного цикла членств:
// разрешение участника по пользователю, расчёт дат продления
// и операции чтения.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-service/internal/lib/period"
	"github.com/magabrotheeeer/membership-service/internal/models"
)

// Ошибки жизненного цикла членств.
var (
	// ErrTooEarlyToRenew возвращается, когда до окончания текущего членства
	// остаётся больше 30 дней: продлевать ещё рано.
	ErrTooEarlyToRenew = errors.New("you can only renew if your membership expires within 30 days")
	// ErrMembershipNotFound возвращается, когда членство не найдено.
	ErrMembershipNotFound = errors.New("membership not found")
)

// AdminRole — роль, которой разрешено задавать дату начала членства вручную.
const AdminRole = "admin"

// MembershipRepository определяет методы для работы с членствами и участниками в хранилище.
type MembershipRepository interface {
	// CreateMembership добавляет новое членство и возвращает его ID.
	CreateMembership(ctx context.Context, m models.Membership) (int, error)
	// GetMembership возвращает членство по ID.
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
	// GetLastActiveMembership возвращает последнее действующее членство участника или nil.
	GetLastActiveMembership(ctx context.Context, memberUID string) (*models.Membership, error)
	// ListMemberships возвращает членства участника с пагинацией.
	ListMemberships(ctx context.Context, memberUID string, limit, offset int) ([]*models.Membership, error)
	// ListAllMemberships возвращает членства всех участников с пагинацией.
	ListAllMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error)
	// CreateMember добавляет нового участника и возвращает его UID.
	CreateMember(ctx context.Context, member models.Member) (string, error)
	// GetMemberByEmail возвращает участника по email или nil.
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
}

// UserRepository определяет доступ к учётным записям пользователей.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SettingsProvider отдаёт действующие настройки членств.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Service реализует бизнес-логику работы с членствами.
type Service struct {
	repo     MembershipRepository
	users    UserRepository
	settings SettingsProvider
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo MembershipRepository, users UserRepository, settings SettingsProvider, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		settings: settings,
		log:      log,
	}
}

// Create оформляет новое членство для текущего пользователя.
//
// Участник находится по email пользователя, при отсутствии — создаётся.
// Дата начала: для администратора — присланная в запросе; при действующем
// членстве — день после его окончания, если до окончания не больше
// 30 дней; иначе — сегодня. Дата окончания считается по расчётному
// циклу из настроек.
func (s *Service) Create(ctx context.Context, username, role string, req models.DummyMembership) (int, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}

	member, err := s.repo.GetMemberByEmail(ctx, user.Email)
	if err != nil {
		return 0, err
	}
	if member == nil {
		uid, err := s.repo.CreateMember(ctx, models.Member{
			FullName:       user.Username,
			Email:          user.Email,
			MembershipType: req.MembershipType,
		})
		if err != nil {
			return 0, err
		}
		member = &models.Member{UID: uid, Email: user.Email, MembershipType: req.MembershipType}
		s.log.Info("created new member", slog.String("uid", uid), slog.String("email", user.Email))
	}

	fromDate, err := s.resolveFromDate(ctx, member.UID, role, req.FromDate)
	if err != nil {
		return 0, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	toDate := period.End(fromDate, settings.BillingCycle)

	entry := models.Membership{
		MemberUID:      member.UID,
		MembershipType: req.MembershipType,
		Status:         models.MembershipStatusCurrent,
		FromDate:       fromDate,
		ToDate:         toDate,
		Paid:           req.Paid,
		Currency:       req.Currency,
		Amount:         req.Amount,
	}

	id, err := s.repo.CreateMembership(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new membership", slog.Int("id", id), slog.String("member", member.UID))
	return id, nil
}

// resolveFromDate вычисляет дату начала нового периода членства.
func (s *Service) resolveFromDate(ctx context.Context, memberUID, role, requested string) (time.Time, error) {
	today := period.Date(time.Now().UTC())

	if role == AdminRole {
		// Администратор задаёт дату начала явно.
		if requested == "" {
			return today, nil
		}
		fromDate, err := time.Parse("02-01-2006", requested)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid from date: %w", err)
		}
		return period.Date(fromDate), nil
	}

	last, err := s.repo.GetLastActiveMembership(ctx, memberUID)
	if err != nil {
		return time.Time{}, err
	}
	if last != nil {
		if period.TooEarlyToRenew(last.ToDate, today) {
			return time.Time{}, ErrTooEarlyToRenew
		}
		return period.NextStart(last.ToDate), nil
	}
	return today, nil
}

// Read возвращает членство по ID, помечая просроченные записи.
func (s *Service) Read(ctx context.Context, id int) (*models.Membership, error) {
	m, err := s.repo.GetMembership(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMembershipNotFound
	}
	markExpired(m)
	return m, nil
}

// List возвращает членства текущего пользователя; администратор видит все.
func (s *Service) List(ctx context.Context, username, role string, limit, offset int) ([]*models.Membership, error) {
	if role == AdminRole {
		entries, err := s.repo.ListAllMemberships(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range entries {
			markExpired(m)
		}
		return entries, nil
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	member, err := s.repo.GetMemberByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	entries, err := s.repo.ListMemberships(ctx, member.UID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, m := range entries {
		markExpired(m)
	}
	return entries, nil
}

// markExpired переводит статус Current в Expired для истёкших периодов.
func markExpired(m *models.Membership) {
	if m.Status == models.MembershipStatusCurrent &&
		period.Date(m.ToDate).Before(period.Date(time.Now().UTC())) {
		m.Status = models.MembershipStatusExpired
	}
}
