package api

import (
	"net/http"
	"strconv"

	"freshcart-be/internal/httpx"
	"freshcart-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	httpx.Success(w, http.StatusOK, out)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.GetStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, stats)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
