package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/membership-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/membership-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetMembership(ctx context.Context, id int) (*models.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}
func (m *RepoMock) GetMember(ctx context.Context, uid string) (*models.Member, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}
func (m *RepoMock) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

type SettingsMock struct{ mock.Mock }

func (m *SettingsMock) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestNotifierService_Acknowledge(t *testing.T) {
	membership := &models.Membership{
		ID:             10,
		MemberUID:      "m-1",
		MembershipType: "Gold",
		FromDate:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ToDate:         time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		Paid:           true,
		Currency:       "INR",
		Amount:         1000,
		InvoiceID:      7,
	}
	member := &models.Member{UID: "m-1", FullName: "Ivan Petrov", Email: "ivan@example.com"}
	invoice := &models.Invoice{
		ID:       7,
		Status:   models.InvoiceStatusSubmitted,
		ItemCode: "MEMB-GOLD",
		Quantity: 1,
		Total:    1000,
		Currency: "INR",
	}

	tests := []struct {
		name       string
		settings   *models.Settings
		setupMocks func(r *RepoMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name: "renders templates and publishes task",
			settings: &models.Settings{
				SendEmail:            true,
				EmailTemplateSubject: "Членство {{.MembershipType}}",
				EmailTemplateBody:    "{{.MemberName}}, действует до {{.ToDate}}",
			},
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(membership, nil).Once()
				r.On("GetMember", mock.Anything, "m-1").Return(member, nil).Once()
				p.On("Publish", rabbitmq.RoutingKeyAcknowledgement, mock.MatchedBy(func(task models.EmailTask) bool {
					return len(task.To) == 1 && task.To[0] == "ivan@example.com" &&
						task.Subject == "Членство Gold" &&
						task.Body == "Ivan Petrov, действует до 15-03-2027"
				})).Return(nil).Once()
			},
		},
		{
			name: "appends invoice summary when enabled",
			settings: &models.Settings{
				SendEmail:         true,
				SendInvoice:       true,
				EmailTemplateBody: "{{.MemberName}}",
			},
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(membership, nil).Once()
				r.On("GetMember", mock.Anything, "m-1").Return(member, nil).Once()
				r.On("GetInvoice", mock.Anything, 7).Return(invoice, nil).Once()
				p.On("Publish", rabbitmq.RoutingKeyAcknowledgement, mock.MatchedBy(func(task models.EmailTask) bool {
					return assert.ObjectsAreEqual(task.To, []string{"ivan@example.com"}) &&
						len(task.Body) > len("Ivan Petrov") &&
						task.Body[:11] == "Ivan Petrov"
				})).Return(nil).Once()
			},
		},
		{
			name:       "emails disabled in settings",
			settings:   &models.Settings{SendEmail: false},
			setupMocks: func(_ *RepoMock, _ *PublisherMock) {},
			wantErr:    ErrEmailDisabled,
		},
		{
			name:     "missing membership",
			settings: &models.Settings{SendEmail: true},
			setupMocks: func(r *RepoMock, _ *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(nil, nil).Once()
			},
			wantErr: ErrMembershipNotFound,
		},
		{
			name:     "membership referencing missing member fails",
			settings: &models.Settings{SendEmail: true},
			setupMocks: func(r *RepoMock, _ *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(membership, nil).Once()
				r.On("GetMember", mock.Anything, "m-1").Return(nil, nil).Once()
			},
			wantErr: errors.New("member m-1 is missing for membership 10"),
		},
		{
			name: "broken subject template",
			settings: &models.Settings{
				SendEmail:            true,
				EmailTemplateSubject: "{{.Broken",
			},
			setupMocks: func(r *RepoMock, _ *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(membership, nil).Once()
				r.On("GetMember", mock.Anything, "m-1").Return(member, nil).Once()
			},
			wantErr: errors.New("failed to parse subject template"),
		},
		{
			name:     "publish error is propagated",
			settings: &models.Settings{SendEmail: true},
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("GetMembership", mock.Anything, 10).Return(membership, nil).Once()
				r.On("GetMember", mock.Anything, "m-1").Return(member, nil).Once()
				p.On("Publish", rabbitmq.RoutingKeyAcknowledgement, mock.Anything).
					Return(errors.New("broker down")).Once()
			},
			wantErr: errors.New("broker down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			settings := new(SettingsMock)
			publisher := new(PublisherMock)
			svc := New(repo, settings, publisher, newNoopLogger())

			settings.On("Get", mock.Anything).Return(tt.settings, nil).Once()
			tt.setupMocks(repo, publisher)

			err := svc.Acknowledge(context.Background(), 10)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			settings.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}
