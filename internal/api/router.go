package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter собирает маршруты сервиса. Пути совпадают с историческим
// API Filmorate, без префикса версии.
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handler.RequestIDMiddleware, handler.LoggingMiddleware)

	films := router.PathPrefix("/films").Subrouter()
	films.HandleFunc("", handler.CreateFilm).Methods(http.MethodPost)
	films.HandleFunc("", handler.UpdateFilm).Methods(http.MethodPut)
	films.HandleFunc("", handler.GetAllFilms).Methods(http.MethodGet)
	// /popular регистрируется раньше /{filmId}, иначе mux сочтет
	// "popular" идентификатором фильма.
	films.HandleFunc("/popular", handler.GetPopularFilms).Methods(http.MethodGet)
	films.HandleFunc("/{filmId}", handler.GetFilmByID).Methods(http.MethodGet)
	films.HandleFunc("/{filmId}/like/{userId}", handler.AddLike).Methods(http.MethodPut)
	films.HandleFunc("/{filmId}/like/{userId}", handler.RemoveLike).Methods(http.MethodDelete)

	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("", handler.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("", handler.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("", handler.GetAllUsers).Methods(http.MethodGet)
	users.HandleFunc("/{userId}", handler.GetUserByID).Methods(http.MethodGet)
	users.HandleFunc("/{userId}/friends", handler.GetFriends).Methods(http.MethodGet)
	users.HandleFunc("/{userId}/friends/common/{otherId}", handler.GetCommonFriends).Methods(http.MethodGet)
	users.HandleFunc("/{userId}/friends/{friendId}", handler.AddFriend).Methods(http.MethodPut)
	users.HandleFunc("/{userId}/friends/{friendId}", handler.RemoveFriend).Methods(http.MethodDelete)

	router.HandleFunc("/genres", handler.GetAllGenres).Methods(http.MethodGet)
	router.HandleFunc("/genres/{id}", handler.GetGenreByID).Methods(http.MethodGet)
	router.HandleFunc("/mpa", handler.GetAllMpa).Methods(http.MethodGet)
	router.HandleFunc("/mpa/{id}", handler.GetMpaByID).Methods(http.MethodGet)

	return router
}
