package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// GetAllGenres — GET /genres.
func (h *Handler) GetAllGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.reference.GetAllGenres(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genres)
}

// GetGenreByID — GET /genres/{id}.
func (h *Handler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, err := referenceID(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	genre, err := h.reference.GetGenreByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genre)
}

// GetAllMpa — GET /mpa.
func (h *Handler) GetAllMpa(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.reference.GetAllMpa(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ratings)
}

// GetMpaByID — GET /mpa/{id}.
func (h *Handler) GetMpaByID(w http.ResponseWriter, r *http.Request) {
	id, err := referenceID(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	rating, err := h.reference.GetMpaByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, rating)
}

func referenceID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("идентификатор должен быть положительным числом")
	}
	return id, nil
}
