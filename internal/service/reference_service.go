package service

import (
	"context"
	"errors"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

// ReferenceService отдает справочники жанров и рейтингов MPA.
type ReferenceService struct {
	genres store.GenreStore
	mpa    store.MpaStore
}

func NewReferenceService(genres store.GenreStore, mpa store.MpaStore) *ReferenceService {
	return &ReferenceService{genres: genres, mpa: mpa}
}

func (s *ReferenceService) GetAllGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.GetAll(ctx)
}

func (s *ReferenceService) GetGenreByID(ctx context.Context, id int) (*domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGenreNotFound) {
			return nil, notFound("Жанр с id = %d не найден", id)
		}
		return nil, err
	}
	return genre, nil
}

func (s *ReferenceService) GetAllMpa(ctx context.Context) ([]domain.Mpa, error) {
	return s.mpa.GetAll(ctx)
}

func (s *ReferenceService) GetMpaByID(ctx context.Context, id int) (*domain.Mpa, error) {
	rating, err := s.mpa.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMpaNotFound) {
			return nil, notFound("Рейтинг MPA с id = %d не найден", id)
		}
		return nil, err
	}
	return rating, nil
}
