package api

import (
	"net/http"
	"strconv"

	"freshcart-be/internal/httpx"
	"freshcart-be/internal/logger"
	"freshcart-be/internal/media"
	"freshcart-be/internal/middleware"
	"freshcart-be/internal/product"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type ProductHandler struct {
	products product.Service
	uploader media.Uploader
}

func NewProductHandler(products product.Service, uploader media.Uploader) *ProductHandler {
	return &ProductHandler{products: products, uploader: uploader}
}

// List serves the public catalog with search, category and sort
// filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := product.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	}
	if v, err := strconv.ParseInt(q.Get("page"), 10, 32); err == nil && v > 0 {
		filter.Page = int32(v)
	}
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 32); err == nil && v > 0 {
		filter.Limit = int32(v)
	}

	page, err := h.products.GetProducts(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, page)
}

// Get serves one product by numeric id or slug.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, p)
}

// Create accepts a multipart form with the product fields and an
// optional image file.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())

	params := product.CreateParams{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Unit:        product.Unit(r.FormValue("unit")),
		CreatedBy:   userID,
	}

	var parseErrs []httpx.FieldError
	params.Price = parseFloatField(r, "price", &parseErrs)
	params.Discount = parseFloatField(r, "discount", &parseErrs)
	params.Stock = int(parseIntField(r, "stock", &parseErrs))
	if v := r.FormValue("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			parseErrs = append(parseErrs, httpx.FieldError{Field: "category", Message: "category must be a numeric id"})
		} else {
			params.CategoryID = &id
		}
	}
	if len(parseErrs) > 0 {
		httpx.FailFields(w, "validation failed", parseErrs...)
		return
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		result, err := h.uploader.Upload(r.Context(), file)
		if err != nil {
			logger.FromCtx(r.Context()).Error("image upload failed", zap.Error(err))
			httpx.Error(w, http.StatusBadGateway, "image upload failed")
			return
		}
		params.Image = result.URL
		params.CloudinaryID = result.PublicID
	}

	p, err := h.products.CreateProduct(r.Context(), params)
	if err != nil {
		h.discardUpload(r, params.CloudinaryID)
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, p)
}

// Update applies only the fields present in the multipart form.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var params product.UpdateParams
	var parseErrs []httpx.FieldError

	if v, ok := formValue(r, "name"); ok {
		params.Name = &v
	}
	if v, ok := formValue(r, "description"); ok {
		params.Description = &v
	}
	if v, ok := formValue(r, "unit"); ok {
		u := product.Unit(v)
		params.Unit = &u
	}
	if v, ok := formValue(r, "price"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			parseErrs = append(parseErrs, httpx.FieldError{Field: "price", Message: "price must be a number"})
		} else {
			params.Price = &f
		}
	}
	if v, ok := formValue(r, "discount"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			parseErrs = append(parseErrs, httpx.FieldError{Field: "discount", Message: "discount must be a number"})
		} else {
			params.Discount = &f
		}
	}
	if v, ok := formValue(r, "stock"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, httpx.FieldError{Field: "stock", Message: "stock must be an integer"})
		} else {
			params.Stock = &n
		}
	}
	if v, ok := formValue(r, "category"); ok {
		cid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			parseErrs = append(parseErrs, httpx.FieldError{Field: "category", Message: "category must be a numeric id"})
		} else {
			params.CategoryID = &cid
		}
	}
	if len(parseErrs) > 0 {
		httpx.FailFields(w, "validation failed", parseErrs...)
		return
	}

	var replacedPublicID string
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()

		// The current image is released once the update lands.
		if prev, err := h.products.GetProduct(r.Context(), strconv.FormatInt(id, 10)); err == nil {
			replacedPublicID = prev.CloudinaryID
		}

		result, err := h.uploader.Upload(r.Context(), file)
		if err != nil {
			logger.FromCtx(r.Context()).Error("image upload failed", zap.Error(err))
			httpx.Error(w, http.StatusBadGateway, "image upload failed")
			return
		}
		params.Image = &result.URL
		params.CloudinaryID = &result.PublicID
	}

	p, err := h.products.UpdateProduct(r.Context(), id, params)
	if err != nil {
		if params.CloudinaryID != nil {
			h.discardUpload(r, *params.CloudinaryID)
		}
		respondError(w, r, err)
		return
	}

	if replacedPublicID != "" && replacedPublicID != p.CloudinaryID {
		h.discardUpload(r, replacedPublicID)
	}

	httpx.Success(w, http.StatusOK, p)
}

// Delete removes the product row and its stored image.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.products.DeleteProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.discardUpload(r, p.CloudinaryID)
	httpx.Success(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// discardUpload best-effort removes an image that no product refers to
// anymore.
func (h *ProductHandler) discardUpload(r *http.Request, publicID string) {
	if publicID == "" {
		return
	}
	if err := h.uploader.Delete(r.Context(), publicID); err != nil {
		logger.FromCtx(r.Context()).Warn("failed to delete stored image",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}

func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseFloatField(r *http.Request, key string, errs *[]httpx.FieldError) float64 {
	v := r.FormValue(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, httpx.FieldError{Field: key, Message: key + " must be a number"})
		return 0
	}
	return f
}

func parseIntField(r *http.Request, key string, errs *[]httpx.FieldError) int64 {
	v := r.FormValue(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		*errs = append(*errs, httpx.FieldError{Field: key, Message: key + " must be an integer"})
		return 0
	}
	return n
}
