package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

const (
	msgEmailTaken  = "Этот email уже используется"
	msgSameUserIDs = "Пользователи должны иметь разные id"
)

// UserService оркестрирует операции над пользователями и дружбой.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create проверяет уникальность email и подставляет логин вместо
// пустого имени. Гонку двух одновременных регистраций с одним email
// закрывает само хранилище (ErrEmailTaken).
func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if err := s.checkEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = req.Login
	}
	user := &domain.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     name,
		Birthday: req.Birthday,
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, conflict(msgEmailTaken)
		}
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", slog.Int64("userID", saved.ID))
	return saved, nil
}

// Update — частичное обновление (см. FilmService.Update). Смена email
// заново проверяет уникальность, но позволяет оставить свой же email.
func (s *UserService) Update(ctx context.Context, req *domain.UpdateUserRequest) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, req.ID)
	if err != nil {
		return nil, s.translateUserError(err, req.ID)
	}

	merged := *existing
	if req.Email != nil && *req.Email != existing.Email {
		if err := s.checkEmailFree(ctx, *req.Email, existing.ID); err != nil {
			return nil, err
		}
		merged.Email = *req.Email
	}
	if req.Login != nil {
		merged.Login = *req.Login
	}
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Birthday != nil {
		merged.Birthday = *req.Birthday
	}
	if strings.TrimSpace(merged.Name) == "" {
		merged.Name = merged.Login
	}

	updated, err := s.users.Update(ctx, &merged)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, conflict(msgEmailTaken)
		}
		return nil, s.translateUserError(err, req.ID)
	}
	s.logger.InfoContext(ctx, "user updated", slog.Int64("userID", updated.ID))
	return updated, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.translateUserError(err, id)
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return s.translateUserError(err, friendID)
	}
	s.logger.InfoContext(ctx, "friend added", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return s.translateUserError(err, userID)
	}
	s.logger.InfoContext(ctx, "friend removed", slog.Int64("userID", userID), slog.Int64("friendID", friendID))
	return nil
}

func (s *UserService) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, s.translateUserError(err, userID)
	}
	return s.users.GetFriends(ctx, userID)
}

// GetCommonFriends отклоняет сравнение пользователя с самим собой.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	if err := s.checkUsersExist(ctx, userID, otherID); err != nil {
		return nil, err
	}
	if userID == otherID {
		return nil, invalidInput(msgSameUserIDs)
	}
	return s.users.GetCommonFriends(ctx, userID, otherID)
}

func (s *UserService) checkUsersExist(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return s.translateUserError(err, id)
		}
	}
	return nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	owner, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if owner.ID != selfID {
		return conflict(msgEmailTaken)
	}
	return nil
}

func (s *UserService) translateUserError(err error, userID int64) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return notFound(msgUserNotFound, userID)
	}
	return err
}
