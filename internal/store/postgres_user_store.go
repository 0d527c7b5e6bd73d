package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"filmorate/internal/domain"
)

// PostgresUserStore реализует UserStore поверх PostgreSQL.
// Уникальность email продублирована ограничением в схеме: гонку двух
// одновременных регистраций ловит БД, ошибка 23505 переводится в
// ErrEmailTaken.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

const selectUserColumns = `user_id, email, login, name, birthday`

// Save вставляет пользователя и перечитывает строку в той же
// транзакции, чтобы ответ всегда отражал то, что легло в БД.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var id int64
	query := `INSERT INTO users (email, login, name, birthday)
              VALUES ($1, $2, $3, $4)
              RETURNING user_id`
	err = tx.GetContext(ctx, &id, query, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			s.logger.WarnContext(ctx, "email unique constraint violated",
				slog.String("email", user.Email), slog.String("constraint", pqErr.Constraint))
			return nil, ErrEmailTaken
		}
		s.logger.ErrorContext(ctx, "failed to insert user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	var saved domain.User
	readback := `SELECT ` + selectUserColumns + ` FROM users WHERE user_id = $1`
	if err := tx.GetContext(ctx, &saved, readback, id); err != nil {
		return nil, fmt.Errorf("user created but not found: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user insert: %w", err)
	}

	s.logger.InfoContext(ctx, "user saved in postgres", slog.Int64("userID", id))
	return &saved, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users SET
                  email = $1,
                  login = $2,
                  name = $3,
                  birthday = $4
              WHERE user_id = $5`
	result, err := s.db.ExecContext(ctx, query,
		user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		s.logger.ErrorContext(ctx, "failed to update user", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrUserNotFound
	}

	s.logger.InfoContext(ctx, "user updated in postgres", slog.Int64("userID", user.ID))
	return s.GetByID(ctx, user.ID)
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE user_id = $1`
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get user by id", slog.Int64("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = $1`
	if err := s.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get user by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT ` + selectUserColumns + ` FROM users ORDER BY user_id`
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AddFriend пишет однонаправленное ребро; повторная вставка того же
// ребра гасится ON CONFLICT DO NOTHING.
func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int64) error {
	query := `INSERT INTO friends (user_id, friend_id)
              VALUES ($1, $2)
              ON CONFLICT (user_id, friend_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, friendID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "failed to add friend", slog.Int64("userID", userID), slog.Int64("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend отсутствующего ребра — no-op.
func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	query := `DELETE FROM friends WHERE user_id = $1 AND friend_id = $2`
	if _, err := s.db.ExecContext(ctx, query, userID, friendID); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove friend", slog.Int64("userID", userID), slog.Int64("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	var friends []domain.User
	query := `SELECT u.user_id, u.email, u.login, u.name, u.birthday
              FROM users u
              JOIN friends f ON u.user_id = f.friend_id
              WHERE f.user_id = $1
              ORDER BY u.user_id`
	if err := s.db.SelectContext(ctx, &friends, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to list friends", slog.Int64("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

func (s *PostgresUserStore) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	var common []domain.User
	query := `SELECT u.user_id, u.email, u.login, u.name, u.birthday
              FROM users u
              JOIN friends f1 ON u.user_id = f1.friend_id
              JOIN friends f2 ON u.user_id = f2.friend_id
              WHERE f1.user_id = $1 AND f2.user_id = $2
              ORDER BY u.user_id`
	if err := s.db.SelectContext(ctx, &common, query, userID, otherID); err != nil {
		s.logger.ErrorContext(ctx, "failed to list common friends", slog.Int64("userID", userID), slog.Int64("otherID", otherID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list common friends: %w", err)
	}
	return common, nil
}
