package store

import (
	"context"

	"filmorate/internal/domain"
)

// MemoryGenreStore и MemoryMpaStore отдают фиксированные справочники.
// Данные неизменяемы, поэтому синхронизация не нужна.
type MemoryGenreStore struct{}

func NewMemoryGenreStore() *MemoryGenreStore { return &MemoryGenreStore{} }

func (s *MemoryGenreStore) GetAll(ctx context.Context) ([]domain.Genre, error) {
	genres := make([]domain.Genre, len(ReferenceGenres))
	copy(genres, ReferenceGenres)
	return genres, nil
}

func (s *MemoryGenreStore) GetByID(ctx context.Context, id int) (*domain.Genre, error) {
	for _, genre := range ReferenceGenres {
		if genre.ID == id {
			found := genre
			return &found, nil
		}
	}
	return nil, ErrGenreNotFound
}

type MemoryMpaStore struct{}

func NewMemoryMpaStore() *MemoryMpaStore { return &MemoryMpaStore{} }

func (s *MemoryMpaStore) GetAll(ctx context.Context) ([]domain.Mpa, error) {
	ratings := make([]domain.Mpa, len(ReferenceMpa))
	copy(ratings, ReferenceMpa)
	return ratings, nil
}

func (s *MemoryMpaStore) GetByID(ctx context.Context, id int) (*domain.Mpa, error) {
	for _, rating := range ReferenceMpa {
		if rating.ID == id {
			found := rating
			return &found, nil
		}
	}
	return nil, ErrMpaNotFound
}
