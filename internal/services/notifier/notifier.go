// Package notifier формирует письма-подтверждения членства по шаблонам
// из настроек и публикует их в очередь уведомлений.
package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/magabrotheeeer/membership-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/membership-service/internal/models"
)

// Ошибки отправки подтверждения.
var (
	// ErrEmailDisabled возвращается, когда отправка писем-подтверждений
	// выключена в настройках.
	ErrEmailDisabled = errors.New("membership acknowledgement emails are disabled in settings")
	// ErrMembershipNotFound возвращается, когда членство не найдено.
	ErrMembershipNotFound = errors.New("membership not found")
)

// Шаблоны по умолчанию, когда в настройках они не заданы.
const (
	defaultSubject = "Подтверждение членства: {{.MembershipType}}"
	defaultBody    = "Здравствуйте, {{.MemberName}}!\n\n" +
		"Ваше членство «{{.MembershipType}}» действует " +
		"с {{.FromDate}} по {{.ToDate}}.\n"
)

// NotifierRepository определяет методы хранилища, нужные для формирования письма.
type NotifierRepository interface {
	GetMembership(ctx context.Context, id int) (*models.Membership, error)
	GetMember(ctx context.Context, uid string) (*models.Member, error)
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
}

// SettingsProvider отдаёт действующие настройки членств.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Publisher публикует задание на отправку письма в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует отправку писем-подтверждений членства.
type Service struct {
	repo      NotifierRepository
	settings  SettingsProvider
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo NotifierRepository, settings SettingsProvider, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		settings:  settings,
		publisher: publisher,
		log:       log,
	}
}

// templateData — данные, доступные в шаблонах темы и текста письма.
type templateData struct {
	MemberName     string
	Email          string
	MembershipType string
	FromDate       string
	ToDate         string
	Amount         float64
	Currency       string
	Paid           bool
}

// Acknowledge формирует письмо-подтверждение для членства и публикует
// задание на его отправку в очередь уведомлений.
//
// Тема и текст рендерятся из шаблонов в настройках; при включённой
// опции к тексту добавляется сводка по выставленному счёту.
func (s *Service) Acknowledge(ctx context.Context, membershipID int) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.SendEmail {
		return ErrEmailDisabled
	}

	m, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMembershipNotFound
	}

	member, err := s.repo.GetMember(ctx, m.MemberUID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("member %s is missing for membership %d", m.MemberUID, m.ID)
	}

	data := templateData{
		MemberName:     member.FullName,
		Email:          member.Email,
		MembershipType: m.MembershipType,
		FromDate:       m.FromDate.Format("02-01-2006"),
		ToDate:         m.ToDate.Format("02-01-2006"),
		Amount:         m.Amount,
		Currency:       m.Currency,
		Paid:           m.Paid,
	}

	subject, err := render("subject", settings.EmailTemplateSubject, defaultSubject, data)
	if err != nil {
		return err
	}
	body, err := render("body", settings.EmailTemplateBody, defaultBody, data)
	if err != nil {
		return err
	}

	if settings.SendInvoice && m.InvoiceID != 0 {
		inv, err := s.repo.GetInvoice(ctx, m.InvoiceID)
		if err != nil {
			return err
		}
		body += invoiceSummary(inv)
	}

	task := models.EmailTask{
		To:      []string{member.Email},
		Subject: subject,
		Body:    body,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyAcknowledgement, task); err != nil {
		return fmt.Errorf("failed to publish acknowledgement: %w", err)
	}

	s.log.Info("queued membership acknowledgement",
		slog.Int("membership_id", m.ID),
		slog.String("to", member.Email))
	return nil
}

// render выполняет шаблон из настроек, подставляя шаблон по умолчанию,
// если в настройках он пуст.
func render(name, text, fallback string, data templateData) (string, error) {
	if strings.TrimSpace(text) == "" {
		text = fallback
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// invoiceSummary возвращает текстовую сводку по счёту для вставки в письмо.
func invoiceSummary(inv *models.Invoice) string {
	var b strings.Builder
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "Счёт №%d (%s)\n", inv.ID, inv.Status)
	fmt.Fprintf(&b, "%s x %d = %.2f %s\n", inv.ItemCode, inv.Quantity, inv.Total, inv.Currency)
	return b.String()
}
