package api

import (
	"net/http"
	"strings"

	"freshcart-be/internal/httpx"
	"freshcart-be/internal/user"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []httpx.FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, httpx.FieldError{Field: "name", Message: "name is required"})
	}
	if !strings.Contains(req.Email, "@") {
		fields = append(fields, httpx.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(req.Password) < 6 {
		fields = append(fields, httpx.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		httpx.FailFields(w, "validation failed", fields...)
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Name, strings.ToLower(req.Email), req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(u)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	token, u, err := h.users.Login(r.Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(u)})
}
