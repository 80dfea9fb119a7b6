// Package razorpaywebhook реализует HTTP-обработчик вебхуков платёжного
// шлюза Razorpay.
//
// Вебхук всегда отвечает HTTP 200: результат обработки передаётся в теле
// JSON-ответа полем status (Success или Failed), чтобы шлюз не повторял
// доставку события, которое не может быть обработано.
package razorpaywebhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-service/internal/lib/sl"
)

// SignatureHeader — заголовок с HMAC-подписью тела вебхука.
const SignatureHeader = "X-Razorpay-Signature"

// Result — тело ответа вебхука.
type Result struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Handler управляет HTTP-запросами вебхуков Razorpay.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сверки подписок по вебхукам.
type Service interface {
	Process(ctx context.Context, body []byte, signature string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вебхук Razorpay
// @Description Принимает события подписок Razorpay. По событию subscription.charged создаёт членство; остальные события игнорируются. Всегда отвечает HTTP 200 со статусом обработки в теле.
// @Tags Webhooks
// @Accept  json
// @Produce  json
// @Success 200 {object} Result "Результат обработки"
// @Router /webhooks/razorpay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.razorpay"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.JSON(w, r, Result{Status: "Failed", Reason: "failed to read request body"})
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if err := h.service.Process(r.Context(), body, signature); err != nil {
		log.Error("webhook processing failed", sl.Err(err))
		render.JSON(w, r, Result{Status: "Failed", Reason: err.Error()})
		return
	}

	log.Info("webhook processed")
	render.JSON(w, r, Result{Status: "Success"})
}
