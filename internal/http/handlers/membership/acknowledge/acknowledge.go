// Package acknowledge реализует HTTP-обработчик отправки
// письма-подтверждения членства.
package acknowledge

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
	"github.com/magabrotheeeer/membership-service/internal/services/notifier"
)

// Handler управляет HTTP-запросами на отправку подтверждений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отправки подтверждения.
type Service interface {
	Acknowledge(ctx context.Context, membershipID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отправить подтверждение членства
// @Description Формирует письмо по шаблонам из настроек и ставит его в очередь уведомлений. При включённой опции к письму добавляется сводка по счёту.
// @Tags Memberships
// @Produce  json
// @Param id path int true "ID членства"
// @Success 200 {object} map[string]any "Письмо поставлено в очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Членство не найдено"
// @Failure 422 {object} response.ErrorResponse "Отправка писем выключена в настройках"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships/{id}/acknowledge [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.acknowledge"
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

	if err := h.service.Acknowledge(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, notifier.ErrMembershipNotFound):
			log.Info("membership not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, notifier.ErrEmailDisabled):
			log.Info("acknowledgement emails disabled")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to queue acknowledgement", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not send acknowledgement"))
		}
		return
	}

	log.Info("acknowledgement queued", slog.Int("membership_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "acknowledgement queued",
	}))
}
