package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// MemoryUserStore — потокобезопасное in-memory хранилище пользователей
// и ребер дружбы. Дружба хранится как исходящие ребра: friends[userID]
// содержит тех, кого userID добавил в друзья.
type MemoryUserStore struct {
	mu           sync.RWMutex
	users        map[int64]*domain.User
	usersByEmail map[string]int64
	friends      map[int64]map[int64]struct{}
	nextID       int64
	logger       *slog.Logger
}

func NewMemoryUserStore(logger *slog.Logger) *MemoryUserStore {
	return &MemoryUserStore{
		users:        make(map[int64]*domain.User),
		usersByEmail: make(map[string]int64),
		friends:      make(map[int64]map[int64]struct{}),
		logger:       logger,
	}
}

func (s *MemoryUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[user.Email]; taken {
		return nil, ErrEmailTaken
	}

	s.nextID++
	copied := *user
	copied.ID = s.nextID
	s.users[copied.ID] = &copied
	s.usersByEmail[copied.Email] = copied.ID

	s.logger.InfoContext(ctx, "user saved in memory store", slog.Int64("userID", copied.ID))
	result := copied
	return &result, nil
}

func (s *MemoryUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if ownerID, taken := s.usersByEmail[user.Email]; taken && ownerID != user.ID {
		return nil, ErrEmailTaken
	}

	delete(s.usersByEmail, stored.Email)
	copied := *user
	s.users[user.ID] = &copied
	s.usersByEmail[copied.Email] = user.ID

	s.logger.InfoContext(ctx, "user updated in memory store", slog.Int64("userID", user.ID))
	result := copied
	return &result, nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *MemoryUserStore) GetAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// AddFriend записывает однонаправленное ребро userID -> friendID.
// Повторное добавление — no-op.
func (s *MemoryUserStore) AddFriend(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if _, ok := s.users[friendID]; !ok {
		return ErrUserNotFound
	}
	edges, ok := s.friends[userID]
	if !ok {
		edges = make(map[int64]struct{})
		s.friends[userID] = edges
	}
	edges[friendID] = struct{}{}
	return nil
}

// RemoveFriend отсутствующего ребра — идемпотентный no-op.
func (s *MemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if edges, ok := s.friends[userID]; ok {
		delete(edges, friendID)
	}
	return nil
}

func (s *MemoryUserStore) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	friends := make([]domain.User, 0, len(s.friends[userID]))
	for friendID := range s.friends[userID] {
		if friend, ok := s.users[friendID]; ok {
			friends = append(friends, *friend)
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })
	return friends, nil
}

// GetCommonFriends — пересечение исходящих ребер двух пользователей.
func (s *MemoryUserStore) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	common := make([]domain.User, 0)
	otherEdges := s.friends[otherID]
	for friendID := range s.friends[userID] {
		if _, ok := otherEdges[friendID]; !ok {
			continue
		}
		if friend, ok := s.users[friendID]; ok {
			common = append(common, *friend)
		}
	}
	sort.Slice(common, func(i, j int) bool { return common[i].ID < common[j].ID })
	return common, nil
}
