package api

import (
	"net/http"
	"strconv"
	"strings"

	"freshcart-be/internal/category"
	"freshcart-be/internal/httpx"
	"freshcart-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	c, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, c)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		httpx.FailFields(w, "validation failed",
			httpx.FieldError{Field: "name", Message: "name is required"})
		return
	}

	var description string
	if req.Description != nil {
		description = *req.Description
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	c, err := h.categories.AddCategory(r.Context(), *req.Name, description, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.categories.UpdateCategory(r.Context(), id, req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
