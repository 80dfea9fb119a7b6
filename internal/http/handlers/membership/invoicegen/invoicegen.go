// Package invoicegen реализует HTTP-обработчик выставления счёта за членство.
//
// Счёт выставляется только за оплаченное членство с положительной суммой
// и валютой; повторное выставление счёта за то же членство отклоняется.
package invoicegen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/membership-service/internal/http/response"
	"github.com/magabrotheeeer/membership-service/internal/lib/sl"
	"github.com/magabrotheeeer/membership-service/internal/models"
	"github.com/magabrotheeeer/membership-service/internal/services/invoice"
)

// Handler управляет HTTP-запросами на выставление счетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выставления счёта.
type Service interface {
	Generate(ctx context.Context, membershipID int) (*models.Invoice, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выставить счёт за членство
// @Description Создает и проводит счёт за оплаченное членство. Счёт содержит одну позицию — товар тарифного плана по ставке, равной сумме членства.
// @Tags Memberships
// @Produce  json
// @Param id path int true "ID членства"
// @Success 200 {object} map[string]any "Выставленный счёт"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Членство не найдено"
// @Failure 422 {object} response.ErrorResponse "Членство не оплачено или счёт уже выставлен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships/{id}/invoice [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.invoicegen"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid membership id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid membership id"))
		return
	}

	inv, err := h.service.Generate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrMembershipNotFound):
			log.Info("membership not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, invoice.ErrMembershipNotEligible),
			errors.Is(err, invoice.ErrInvoiceAlreadyExists),
			errors.Is(err, invoice.ErrMemberMissingCustomer),
			errors.Is(err, invoice.ErrSettingsIncomplete):
			log.Info("invoice rejected", slog.Int("id", id), sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to generate invoice", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not generate invoice"))
		}
		return
	}

	log.Info("invoice generated", slog.Int("invoice_id", inv.ID), slog.Int("membership_id", id))
	render.JSON(w, r, response.OKWithData(inv))
}
