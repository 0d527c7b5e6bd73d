package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"filmorate/internal/domain"
)

// PostgresGenreStore и PostgresMpaStore читают справочники из таблиц,
// наполненных миграцией.
type PostgresGenreStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresGenreStore(db *sqlx.DB, logger *slog.Logger) (*PostgresGenreStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresGenreStore{db: db, logger: logger}, nil
}

func (s *PostgresGenreStore) GetAll(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre
	query := `SELECT genre_id, name FROM genres ORDER BY genre_id`
	if err := s.db.SelectContext(ctx, &genres, query); err != nil {
		s.logger.ErrorContext(ctx, "failed to list genres", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresGenreStore) GetByID(ctx context.Context, id int) (*domain.Genre, error) {
	var genre domain.Genre
	query := `SELECT genre_id, name FROM genres WHERE genre_id = $1`
	if err := s.db.GetContext(ctx, &genre, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get genre by id", slog.Int("genreID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return &genre, nil
}

type PostgresMpaStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMpaStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMpaStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMpaStore{db: db, logger: logger}, nil
}

func (s *PostgresMpaStore) GetAll(ctx context.Context) ([]domain.Mpa, error) {
	var ratings []domain.Mpa
	query := `SELECT mpa_id, name FROM mpa ORDER BY mpa_id`
	if err := s.db.SelectContext(ctx, &ratings, query); err != nil {
		s.logger.ErrorContext(ctx, "failed to list mpa ratings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresMpaStore) GetByID(ctx context.Context, id int) (*domain.Mpa, error) {
	var rating domain.Mpa
	query := `SELECT mpa_id, name FROM mpa WHERE mpa_id = $1`
	if err := s.db.GetContext(ctx, &rating, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMpaNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get mpa by id", slog.Int("mpaID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get mpa by id: %w", err)
	}
	return &rating, nil
}
