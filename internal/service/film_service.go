package service

import (
	"context"
	"errors"
	"log/slog"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

// Сообщения пользовательских ошибок.
const (
	msgFilmNotFound  = "Фильм с id = %d не найден"
	msgUserNotFound  = "Пользователь с id = %d не найден"
	msgGenreNotFound = "Один или несколько жанров не найдены"
	msgMpaNotFound   = "Рейтинг MPA не найден"
	msgLikeExists    = "Пользователь с id = %d уже поставил лайк фильму с id = %d"
)

// FilmService оркестрирует операции над фильмами: проверки
// существования, частичное слияние при обновлении, перевод ошибок
// хранилища в таксономию сервиса.
type FilmService struct {
	films  store.FilmStore
	users  store.UserStore
	logger *slog.Logger
}

func NewFilmService(films store.FilmStore, users store.UserStore, logger *slog.Logger) *FilmService {
	return &FilmService{films: films, users: users, logger: logger}
}

func (s *FilmService) Create(ctx context.Context, req *domain.CreateFilmRequest) (*domain.Film, error) {
	film := &domain.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		Mpa:         mpaFromRef(req.Mpa),
		Genres:      genresFromRefs(req.Genres),
	}

	saved, err := s.films.Save(ctx, film)
	if err != nil {
		return nil, s.translateFilmError(err, 0)
	}
	s.logger.InfoContext(ctx, "film created", slog.Int64("filmID", saved.ID))
	return saved, nil
}

// Update — частичное обновление: на копию сохраненной записи
// накладываются только переданные поля, затем слитая сущность целиком
// уходит в хранилище. Nil-указатель означает "поле не трогать".
func (s *FilmService) Update(ctx context.Context, req *domain.UpdateFilmRequest) (*domain.Film, error) {
	existing, err := s.films.GetByID(ctx, req.ID)
	if err != nil {
		return nil, s.translateFilmError(err, req.ID)
	}

	merged := *existing
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.ReleaseDate != nil {
		merged.ReleaseDate = *req.ReleaseDate
	}
	if req.Duration != nil {
		merged.Duration = *req.Duration
	}
	if req.Mpa != nil {
		merged.Mpa = mpaFromRef(req.Mpa)
	}
	if req.Genres != nil {
		merged.Genres = genresFromRefs(req.Genres)
	}

	updated, err := s.films.Update(ctx, &merged)
	if err != nil {
		return nil, s.translateFilmError(err, req.ID)
	}
	s.logger.InfoContext(ctx, "film updated", slog.Int64("filmID", updated.ID))
	return updated, nil
}

func (s *FilmService) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	film, err := s.films.GetByID(ctx, id)
	if err != nil {
		return nil, s.translateFilmError(err, id)
	}
	return film, nil
}

func (s *FilmService) GetAll(ctx context.Context) ([]domain.Film, error) {
	return s.films.GetAll(ctx)
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUserExist(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		if errors.Is(err, store.ErrLikeExists) {
			return conflict(msgLikeExists, userID, filmID)
		}
		return s.translateFilmError(err, filmID)
	}
	s.logger.InfoContext(ctx, "like added", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUserExist(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return s.translateFilmError(err, filmID)
	}
	s.logger.InfoContext(ctx, "like removed", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

// GetPopular нормализует count: отсутствующее или неположительное
// значение заменяется размером выдачи по умолчанию.
func (s *FilmService) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		count = store.DefaultPopularCount
	}
	return s.films.GetPopular(ctx, count)
}

func (s *FilmService) checkFilmAndUserExist(ctx context.Context, filmID, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(msgUserNotFound, userID)
		}
		return err
	}
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		return s.translateFilmError(err, filmID)
	}
	return nil
}

func (s *FilmService) translateFilmError(err error, filmID int64) error {
	switch {
	case errors.Is(err, store.ErrFilmNotFound):
		return notFound(msgFilmNotFound, filmID)
	case errors.Is(err, store.ErrGenreNotFound):
		return notFound(msgGenreNotFound)
	case errors.Is(err, store.ErrMpaNotFound):
		return notFound(msgMpaNotFound)
	default:
		return err
	}
}

func mpaFromRef(ref *domain.MpaRef) domain.Mpa {
	if ref == nil {
		return domain.Mpa{}
	}
	return domain.Mpa{ID: ref.ID}
}

func genresFromRefs(refs []domain.GenreRef) []domain.Genre {
	genres := make([]domain.Genre, 0, len(refs))
	for _, ref := range refs {
		genres = append(genres, domain.Genre{ID: ref.ID})
	}
	return genres
}
