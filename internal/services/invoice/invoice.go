// Package invoice содержит бизнес-логику выставления счетов
// за оплаченные членства.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

// Ошибки выставления счёта.
var (
	// ErrMembershipNotEligible возвращается, когда членство не оплачено,
	// сумма не положительна или не указана валюта.
	ErrMembershipNotEligible = errors.New("membership must be paid with a positive amount and a currency to generate an invoice")
	// ErrInvoiceAlreadyExists возвращается при повторной попытке
	// выставить счёт за то же членство.
	ErrInvoiceAlreadyExists = errors.New("invoice already exists for this membership")
	// ErrMembershipNotFound возвращается, когда членство не найдено.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrMemberMissingCustomer возвращается, когда у участника нет
	// привязанного клиента для выставления счёта.
	ErrMemberMissingCustomer = errors.New("member has no linked customer to bill")
	// ErrSettingsIncomplete возвращается, когда в настройках членств
	// не заданы компания или дебетовый счёт.
	ErrSettingsIncomplete = errors.New("membership settings must define company and debit account")
)

// InvoiceRepository определяет методы хранилища, нужные для выставления счёта.
type InvoiceRepository interface {
	// GetMembership возвращает членство по ID.
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
	// GetMember возвращает участника по UID.
	GetMember(ctx context.Context, uid string) (*models.Member, error)
	// GetMembershipType возвращает тарифный план по названию.
	GetMembershipType(ctx context.Context, name string) (*models.MembershipType, error)
	// CreateSubmittedInvoice атомарно создаёт счёт, проводит его
	// и привязывает к членству.
	CreateSubmittedInvoice(ctx context.Context, inv models.Invoice) (int, error)
	// GetInvoice возвращает счёт по ID.
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
}

// SettingsProvider отдаёт действующие настройки членств.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Service реализует выставление счетов за членства.
type Service struct {
	repo     InvoiceRepository
	settings SettingsProvider
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo InvoiceRepository, settings SettingsProvider, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		log:      log,
	}
}

// Generate выставляет счёт за оплаченное членство.
//
// Членство должно быть оплачено, с положительной суммой и валютой,
// и не иметь выставленного счёта. Счёт содержит одну позицию —
// товар тарифного плана по ставке, равной сумме членства, — и сразу
// проводится. Счёт и привязка к членству создаются атомарно.
func (s *Service) Generate(ctx context.Context, membershipID int) (*models.Invoice, error) {
	m, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMembershipNotFound
	}
	if m.InvoiceID != 0 {
		return nil, ErrInvoiceAlreadyExists
	}
	if !m.Paid || m.Amount <= 0 || m.Currency == "" {
		return nil, ErrMembershipNotEligible
	}

	member, err := s.repo.GetMember(ctx, m.MemberUID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("member %s is missing for membership %d", m.MemberUID, m.ID)
	}
	if member.CustomerID == "" {
		return nil, ErrMemberMissingCustomer
	}

	membershipType, err := s.repo.GetMembershipType(ctx, m.MembershipType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve membership type: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Company == "" || settings.DebitAccount == "" {
		return nil, ErrSettingsIncomplete
	}

	inv := models.Invoice{
		CustomerID:   member.CustomerID,
		Company:      settings.Company,
		DebitAccount: settings.DebitAccount,
		Currency:     m.Currency,
		ItemCode:     membershipType.ItemCode,
		Quantity:     1,
		Rate:         m.Amount,
		Total:        m.Amount,
		MembershipID: m.ID,
	}

	invoiceID, err := s.repo.CreateSubmittedInvoice(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated invoice",
		slog.Int("invoice_id", invoiceID),
		slog.Int("membership_id", m.ID))

	return s.repo.GetInvoice(ctx, invoiceID)
}
