package api

import (
	"net/http"

	"filmorate/internal/domain"
)

// CreateUser — POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "create user request received")

	var req domain.CreateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Create(ctx, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, user)
}

// UpdateUser — PUT /users, частичное обновление, id в теле.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "update user request received")

	var req domain.UpdateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Update(ctx, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// GetAllUsers — GET /users.
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

// GetUserByID — GET /users/{userId}.
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

// AddFriend — PUT /users/{userId}/friends/{friendId}.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.friendIDs(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

// RemoveFriend — DELETE /users/{userId}/friends/{friendId}.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.friendIDs(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

// GetFriends — GET /users/{userId}/friends.
func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	friends, err := h.users.GetFriends(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

// GetCommonFriends — GET /users/{userId}/friends/common/{otherId}.
func (h *Handler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, otherID, ok := h.friendIDs(w, r, "otherId")
	if !ok {
		return
	}
	common, err := h.users.GetCommonFriends(r.Context(), userID, otherID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, common)
}

func (h *Handler) friendIDs(w http.ResponseWriter, r *http.Request, secondVar string) (userID, secondID int64, ok bool) {
	userID, err := h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	secondID, err = h.pathID(r, secondVar)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return userID, secondID, true
}
