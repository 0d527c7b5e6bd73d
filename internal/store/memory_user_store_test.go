package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

func testUser(email, login string) *domain.User {
	return &domain.User{
		Email:    email,
		Login:    login,
		Name:     login,
		Birthday: domain.NewDate(1990, time.June, 15),
	}
}

func seedUsers(t *testing.T, s *MemoryUserStore, n int) []*domain.User {
	t.Helper()
	ctx := context.Background()
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		login := string(rune('a' + i))
		saved, err := s.Save(ctx, testUser(login+"@mail.ru", login))
		require.NoError(t, err)
		users = append(users, saved)
	}
	return users
}

func TestMemoryUserStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())

	saved, err := s.Save(ctx, testUser("user@mail.ru", "login"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	byID, err := s.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, byID)

	byEmail, err := s.GetByEmail(ctx, "user@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())

	_, err := s.Save(ctx, testUser("dup@mail.ru", "first"))
	require.NoError(t, err)
	_, err = s.Save(ctx, testUser("dup@mail.ru", "second"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryUserStore_UpdateEmailIndex(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())

	saved, err := s.Save(ctx, testUser("old@mail.ru", "login"))
	require.NoError(t, err)

	saved.Email = "new@mail.ru"
	_, err = s.Update(ctx, saved)
	require.NoError(t, err)

	_, err = s.GetByEmail(ctx, "old@mail.ru")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Освободившийся email можно занять.
	_, err = s.Save(ctx, testUser("old@mail.ru", "other"))
	assert.NoError(t, err)
}

func TestMemoryUserStore_FriendshipIsDirected(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())
	users := seedUsers(t, s, 2)

	require.NoError(t, s.AddFriend(ctx, users[0].ID, users[1].ID))

	friends, err := s.GetFriends(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, users[1].ID, friends[0].ID)

	// Обратного ребра нет.
	reverse, err := s.GetFriends(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, reverse)
}

func TestMemoryUserStore_RemoveFriendIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())
	users := seedUsers(t, s, 2)

	// Удаление несуществующего ребра не ошибка и не меняет состояние.
	require.NoError(t, s.RemoveFriend(ctx, users[0].ID, users[1].ID))

	require.NoError(t, s.AddFriend(ctx, users[0].ID, users[1].ID))
	require.NoError(t, s.RemoveFriend(ctx, users[0].ID, users[1].ID))
	require.NoError(t, s.RemoveFriend(ctx, users[0].ID, users[1].ID))

	friends, err := s.GetFriends(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestMemoryUserStore_CommonFriends(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())
	users := seedUsers(t, s, 3)

	require.NoError(t, s.AddFriend(ctx, users[0].ID, users[2].ID))
	require.NoError(t, s.AddFriend(ctx, users[1].ID, users[2].ID))

	common, err := s.GetCommonFriends(ctx, users[0].ID, users[1].ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, users[2].ID, common[0].ID)
}

func TestMemoryUserStore_AddFriendUnknownUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore(testLogger())
	users := seedUsers(t, s, 1)

	assert.ErrorIs(t, s.AddFriend(ctx, users[0].ID, 404), ErrUserNotFound)
	assert.ErrorIs(t, s.AddFriend(ctx, 404, users[0].ID), ErrUserNotFound)
}
