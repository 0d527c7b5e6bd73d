package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"filmorate/internal/domain"
)

// PostgresFilmStore реализует FilmStore поверх PostgreSQL.
// Фильм читается одним JOIN-запросом (строка размножается по жанрам),
// плоские строки собираются обратно в модели в collectFilms.
type PostgresFilmStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger}, nil
}

// filmRow — одна плоская строка JOIN-выборки фильма.
type filmRow struct {
	FilmID      int64          `db:"film_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	ReleaseDate domain.Date    `db:"release_date"`
	Duration    int            `db:"duration"`
	MpaID       int            `db:"mpa_id"`
	MpaName     string         `db:"mpa_name"`
	GenreID     sql.NullInt64  `db:"genre_id"`
	GenreName   sql.NullString `db:"genre_name"`
	LikesCount  int64          `db:"likes_count"`
}

const selectFilmColumns = `
	f.film_id, f.name, f.description, f.release_date, f.duration,
	m.mpa_id AS mpa_id, m.name AS mpa_name,
	g.genre_id AS genre_id, g.name AS genre_name`

const filmJoins = `
	FROM films f
	JOIN mpa m ON f.mpa_id = m.mpa_id
	LEFT JOIN film_genres fg ON f.film_id = fg.film_id
	LEFT JOIN genres g ON fg.genre_id = g.genre_id`

func (s *PostgresFilmStore) Save(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	mpaID := film.Mpa.ID
	if mpaID == 0 {
		mpaID = DefaultMpa.ID
	}
	if err := validateFilmReferences(ctx, tx, mpaID, film.Genres); err != nil {
		return nil, err
	}

	var id int64
	query := `INSERT INTO films (name, description, release_date, duration, mpa_id)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING film_id`
	err = tx.GetContext(ctx, &id, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert film", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert film: %w", err)
	}

	if err := replaceFilmGenres(ctx, tx, id, film.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film insert: %w", err)
	}

	s.logger.InfoContext(ctx, "film saved in postgres", slog.Int64("filmID", id))
	return s.GetByID(ctx, id)
}

func (s *PostgresFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	mpaID := film.Mpa.ID
	if mpaID == 0 {
		mpaID = DefaultMpa.ID
	}
	if err := validateFilmReferences(ctx, tx, mpaID, film.Genres); err != nil {
		return nil, err
	}

	query := `UPDATE films SET
                  name = $1,
                  description = $2,
                  release_date = $3,
                  duration = $4,
                  mpa_id = $5
              WHERE film_id = $6`
	result, err := tx.ExecContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID, film.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update film", slog.Int64("filmID", film.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrFilmNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := replaceFilmGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film update: %w", err)
	}

	s.logger.InfoContext(ctx, "film updated in postgres", slog.Int64("filmID", film.ID))
	return s.GetByID(ctx, film.ID)
}

func (s *PostgresFilmStore) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	query := `SELECT` + selectFilmColumns + filmJoins + `
	WHERE f.film_id = $1
	ORDER BY g.genre_id`

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, query, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to get film by id", slog.Int64("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by id: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrFilmNotFound
	}
	films := collectFilms(rows)
	return &films[0], nil
}

func (s *PostgresFilmStore) GetAll(ctx context.Context) ([]domain.Film, error) {
	query := `SELECT` + selectFilmColumns + filmJoins + `
	ORDER BY f.film_id, g.genre_id`

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		s.logger.ErrorContext(ctx, "failed to list films", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	return collectFilms(rows), nil
}

func (s *PostgresFilmStore) AddLike(ctx context.Context, filmID, userID int64) error {
	query := `INSERT INTO likes (film_id, user_id) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, filmID, userID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation: лайк уже стоит
				return ErrLikeExists
			case "23503": // foreign_key_violation
				if strings.Contains(pqErr.Constraint, "user") {
					return ErrUserNotFound
				}
				return ErrFilmNotFound
			}
		}
		s.logger.ErrorContext(ctx, "failed to add like", slog.Int64("filmID", filmID), slog.Int64("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike не проверяет, была ли связь: удаление отсутствующего
// лайка — no-op.
func (s *PostgresFilmStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	query := `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`
	if _, err := s.db.ExecContext(ctx, query, filmID, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove like", slog.Int64("filmID", filmID), slog.Int64("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// GetPopular сортирует по числу лайков внутри подзапроса, чтобы LIMIT
// применялся к фильмам, а не к размноженным жанрами строкам. COUNT по
// LEFT JOIN дает 0 для фильмов без лайков, поэтому они включаются в
// выдачу и идут последними (в отличие от сортировки по NULL).
func (s *PostgresFilmStore) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	query := `
	SELECT
		f.film_id, f.name, f.description, f.release_date, f.duration, f.likes_count,
		m.mpa_id AS mpa_id, m.name AS mpa_name,
		g.genre_id AS genre_id, g.name AS genre_name
	FROM (
		SELECT f.film_id, f.name, f.description, f.release_date, f.duration, f.mpa_id,
		       COUNT(l.user_id) AS likes_count
		FROM films f
		LEFT JOIN likes l ON f.film_id = l.film_id
		GROUP BY f.film_id
		ORDER BY likes_count DESC, f.film_id
		LIMIT $1
	) f
	JOIN mpa m ON f.mpa_id = m.mpa_id
	LEFT JOIN film_genres fg ON f.film_id = fg.film_id
	LEFT JOIN genres g ON fg.genre_id = g.genre_id
	ORDER BY f.likes_count DESC, f.film_id, g.genre_id`

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, query, count); err != nil {
		s.logger.ErrorContext(ctx, "failed to get popular films", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get popular films: %w", err)
	}
	return collectFilms(rows), nil
}

// validateFilmReferences проверяет существование рейтинга и жанров до
// записи, чтобы вернуть осмысленную ошибку вместо нарушения FK.
func validateFilmReferences(ctx context.Context, tx *sqlx.Tx, mpaID int, genres []domain.Genre) error {
	var mpaCount int
	if err := tx.GetContext(ctx, &mpaCount, `SELECT COUNT(mpa_id) FROM mpa WHERE mpa_id = $1`, mpaID); err != nil {
		return fmt.Errorf("failed to check mpa: %w", err)
	}
	if mpaCount == 0 {
		return ErrMpaNotFound
	}

	genreIDs := distinctGenreIDs(genres)
	if len(genreIDs) == 0 {
		return nil
	}
	var genreCount int
	err := tx.GetContext(ctx, &genreCount,
		`SELECT COUNT(genre_id) FROM genres WHERE genre_id = ANY($1)`, pq.Array(genreIDs))
	if err != nil {
		return fmt.Errorf("failed to check genres: %w", err)
	}
	if genreCount != len(genreIDs) {
		return ErrGenreNotFound
	}
	return nil
}

func replaceFilmGenres(ctx context.Context, tx *sqlx.Tx, filmID int64, genres []domain.Genre) error {
	for _, genreID := range distinctGenreIDs(genres) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`, filmID, genreID)
		if err != nil {
			return fmt.Errorf("failed to link film genre: %w", err)
		}
	}
	return nil
}

func distinctGenreIDs(genres []domain.Genre) []int {
	seen := make(map[int]struct{}, len(genres))
	ids := make([]int, 0, len(genres))
	for _, genre := range genres {
		if _, dup := seen[genre.ID]; dup {
			continue
		}
		seen[genre.ID] = struct{}{}
		ids = append(ids, genre.ID)
	}
	sort.Ints(ids)
	return ids
}

// collectFilms собирает плоские JOIN-строки в модели, сохраняя порядок
// первого вхождения film_id (его задает ORDER BY запроса).
func collectFilms(rows []filmRow) []domain.Film {
	films := make([]domain.Film, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		i, ok := index[row.FilmID]
		if !ok {
			films = append(films, domain.Film{
				ID:          row.FilmID,
				Name:        row.Name,
				Description: row.Description,
				ReleaseDate: row.ReleaseDate,
				Duration:    row.Duration,
				Mpa:         domain.Mpa{ID: row.MpaID, Name: row.MpaName},
				Genres:      []domain.Genre{},
			})
			i = len(films) - 1
			index[row.FilmID] = i
		}
		if row.GenreID.Valid {
			films[i].Genres = append(films[i].Genres, domain.Genre{
				ID:   int(row.GenreID.Int64),
				Name: row.GenreName.String,
			})
		}
	}
	return films
}
