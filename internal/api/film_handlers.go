package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"filmorate/internal/domain"
)

// CreateFilm — POST /films.
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "create film request received")

	var req domain.CreateFilmRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	film, err := h.films.Create(ctx, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, film)
}

// UpdateFilm — PUT /films, частичное обновление, id в теле.
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "update film request received")

	var req domain.UpdateFilmRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	film, err := h.films.Update(ctx, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

// GetAllFilms — GET /films.
func (h *Handler) GetAllFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.GetAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

// GetFilmByID — GET /films/{filmId}.
func (h *Handler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	filmID, err := h.pathID(r, "filmId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	film, err := h.films.GetByID(r.Context(), filmID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

// AddLike — PUT /films/{filmId}/like/{userId}.
func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, ok := h.likeIDs(w, r)
	if !ok {
		return
	}
	if err := h.films.AddLike(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

// RemoveLike — DELETE /films/{filmId}/like/{userId}.
func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, ok := h.likeIDs(w, r)
	if !ok {
		return
	}
	if err := h.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

// GetPopularFilms — GET /films/popular?count=N.
func (h *Handler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "Параметр count должен быть числом")
			return
		}
		count = parsed
	}

	films, err := h.films.GetPopular(ctx, count)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "popular films returned", slog.Int("count", len(films)))
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) likeIDs(w http.ResponseWriter, r *http.Request) (filmID, userID int64, ok bool) {
	filmID, err := h.pathID(r, "filmId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	userID, err = h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return filmID, userID, true
}
