// Package reconciler обрабатывает вебхуки платёжного шлюза Razorpay:
// проверяет подпись и создаёт членства по событию subscription.charged.
package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/membership-service/internal/lib/razorpay"
	"github.com/magabrotheeeer/membership-service/internal/models"
)

// ErrInvalidSignature возвращается, когда подпись вебхука не совпадает
// с вычисленной по секрету из настроек.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Валюта платежей Razorpay по подпискам.
const webhookCurrency = "INR"

// ReconcilerRepository определяет методы хранилища для сверки подписок.
type ReconcilerRepository interface {
	// GetMemberBySubscription возвращает участника по ID подписки и email или nil.
	GetMemberBySubscription(ctx context.Context, subscriptionID, email string) (*models.Member, error)
	// CreateMember добавляет нового участника и возвращает его UID.
	CreateMember(ctx context.Context, member models.Member) (string, error)
	// UpdateMemberSubscription обновляет данные подписки участника.
	UpdateMemberSubscription(ctx context.Context, member models.Member) error
	// AddMemberComment добавляет комментарий к участнику.
	AddMemberComment(ctx context.Context, memberUID, content string) error
	// GetMembershipTypeByRazorpayPlanID возвращает название плана по ID в Razorpay
	// или пустую строку.
	GetMembershipTypeByRazorpayPlanID(ctx context.Context, planID string) (string, error)
	// CreateMembership добавляет новое членство и возвращает его ID.
	CreateMembership(ctx context.Context, m models.Membership) (int, error)
}

// SettingsProvider отдаёт действующие настройки членств.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Publisher публикует уведомления администраторам в очередь.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует сверку подписок по вебхукам Razorpay.
type Service struct {
	repo        ReconcilerRepository
	settings    SettingsProvider
	publisher   Publisher
	adminEmails []string
	log         *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ReconcilerRepository, settings SettingsProvider, publisher Publisher,
	adminEmails []string, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		settings:    settings,
		publisher:   publisher,
		adminEmails: adminEmails,
		log:         log,
	}
}

// Process обрабатывает вебхук Razorpay.
//
// Подпись проверяется по секрету из настроек; события, кроме
// subscription.charged, игнорируются без побочных эффектов. Для
// оплаченного периода подписки создаётся членство: участник находится
// по (ID подписки, email плательщика), при отсутствии — создаётся
// по плану Razorpay, а заметки подписки сохраняются комментариями.
// Сумма платежа приходит в пайсах и переводится в рупии.
func (s *Service) Process(ctx context.Context, body []byte, signature string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !razorpay.VerifyWebhookSignature(body, signature, settings.WebhookSecret) {
		s.notifyAdmins("получен вебхук с неверной подписью")
		return ErrInvalidSignature
	}

	var event razorpay.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	if event.Event != razorpay.EventSubscriptionCharged {
		s.log.Info("ignoring webhook event", slog.String("event", event.Event))
		return nil
	}

	subscription := event.Payload.Subscription.Entity
	payment := event.Payload.Payment.Entity

	if err := s.reconcile(ctx, subscription, payment); err != nil {
		s.log.Error("failed to reconcile subscription charge",
			slog.String("payment_id", payment.ID),
			slog.Any("err", err))
		s.notifyAdmins(fmt.Sprintf(
			"не удалось обработать платёж %s по подписке %s: %v",
			payment.ID, subscription.ID, err))
		return err
	}
	return nil
}

// reconcile создаёт членство по оплаченному периоду подписки.
func (s *Service) reconcile(ctx context.Context, subscription razorpay.Subscription, payment razorpay.Payment) error {
	member, err := s.repo.GetMemberBySubscription(ctx, subscription.ID, payment.Email)
	if err != nil {
		return err
	}
	if member == nil {
		member, err = s.createMember(ctx, subscription, payment)
		if err != nil {
			return err
		}
	}

	start := time.Unix(subscription.StartAt, 0).UTC()
	end := time.Unix(subscription.EndAt, 0).UTC()
	member.CustomerID = payment.CustomerID
	member.SubscriptionID = subscription.ID
	member.SubscriptionStart = &start
	member.SubscriptionEnd = &end
	member.SubscriptionActivated = true
	if err := s.repo.UpdateMemberSubscription(ctx, *member); err != nil {
		return err
	}

	entry := models.Membership{
		MemberUID:      member.UID,
		MembershipType: member.MembershipType,
		Status:         models.MembershipStatusCurrent,
		FromDate:       time.Unix(subscription.CurrentStart, 0).UTC(),
		ToDate:         time.Unix(subscription.CurrentEnd, 0).UTC(),
		Paid:           true,
		Currency:       webhookCurrency,
		Amount:         float64(payment.Amount) / 100,
		PaymentID:      payment.ID,
	}
	id, err := s.repo.CreateMembership(ctx, entry)
	if err != nil {
		return err
	}

	s.log.Info("reconciled subscription charge",
		slog.Int("membership_id", id),
		slog.String("member", member.UID),
		slog.String("payment_id", payment.ID))
	return nil
}

// createMember заводит нового участника по данным вебхука: тарифный план
// находится по ID плана Razorpay, заметки подписки сохраняются комментариями.
func (s *Service) createMember(ctx context.Context, subscription razorpay.Subscription, payment razorpay.Payment) (*models.Member, error) {
	planName, err := s.repo.GetMembershipTypeByRazorpayPlanID(ctx, subscription.PlanID)
	if err != nil {
		return nil, err
	}

	member := models.Member{
		FullName:       payment.Email,
		Email:          payment.Email,
		MembershipType: planName,
		CustomerID:     payment.CustomerID,
		SubscriptionID: subscription.ID,
	}
	uid, err := s.repo.CreateMember(ctx, member)
	if err != nil {
		return nil, err
	}
	member.UID = uid

	for _, line := range subscription.NotesLines() {
		if err := s.repo.AddMemberComment(ctx, uid, line); err != nil {
			s.log.Warn("failed to record subscription note",
				slog.String("member", uid), slog.Any("err", err))
		}
	}

	s.log.Info("created member from webhook",
		slog.String("uid", uid), slog.String("email", payment.Email))
	return &member, nil
}

// notifyAdmins ставит в очередь письмо администраторам о проблеме с вебхуком.
func (s *Service) notifyAdmins(reason string) {
	if len(s.adminEmails) == 0 {
		return
	}
	task := models.EmailTask{
		To:      s.adminEmails,
		Subject: "Ошибка обработки вебхука Razorpay",
		Body:    reason,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyAdmin, task); err != nil {
		s.log.Warn("failed to publish admin notification", slog.Any("err", err))
	}
}
