package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"filmorate/internal/service"
)

// Handler содержит зависимости HTTP-обработчиков.
type Handler struct {
	films     *service.FilmService
	users     *service.UserService
	reference *service.ReferenceService
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHandler(
	films *service.FilmService,
	users *service.UserService,
	reference *service.ReferenceService,
	logger *slog.Logger,
	validator *validator.Validate,
) *Handler {
	return &Handler{
		films:     films,
		users:     users,
		reference: reference,
		logger:    logger,
		validator: validator,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to encode JSON response",
				slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError сопоставляет таксономию сервисных ошибок со
// статусами HTTP. Непереведенные ошибки хранилища сюда не доходят —
// сервисный слой заворачивает их, а все прочее означает 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		h.respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "unhandled service error",
			slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}

// pathID достает числовой идентификатор из переменной пути.
func (h *Handler) pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("идентификатор должен быть положительным числом")
	}
	return id, nil
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close() //nolint:errcheck
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body",
			slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusBadRequest, "Некорректное тело запроса")
		return false
	}
	if err := h.validator.StructCtx(r.Context(), dst); err != nil {
		h.logger.WarnContext(r.Context(), "request validation failed",
			slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusBadRequest, "Ошибка валидации: "+err.Error())
		return false
	}
	return true
}
