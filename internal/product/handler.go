package product

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20 // 10 MiB

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

// Register mounts the public catalog reads.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

// RegisterAdmin mounts the catalog mutations; the caller wraps them with the
// admin gate.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/add", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching products")
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching product")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateProductInput
	var file *ImageFile

	if isMultipart(r) {
		fields, f, ok := h.parseMultipart(w, r)
		if !ok {
			return
		}
		file = f

		price, err := strconv.ParseFloat(fields["price"], 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "price must be a number")
			return
		}
		input = CreateProductInput{
			Category:    fields["category"],
			Name:        fields["name"],
			Price:       price,
			Description: fields["description"],
		}
	} else if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if input.Category == "" || input.Name == "" || input.Description == "" || input.Price <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "category, name, price and description are required")
		return
	}

	p, err := h.Svc.Create(r.Context(), input, file)
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating product")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var input UpdateProductInput
	var file *ImageFile

	if isMultipart(r) {
		fields, f, ok := h.parseMultipart(w, r)
		if !ok {
			return
		}
		file = f

		if v, ok := fields["category"]; ok && v != "" {
			input.Category = &v
		}
		if v, ok := fields["name"]; ok && v != "" {
			input.Name = &v
		}
		if v, ok := fields["description"]; ok && v != "" {
			input.Description = &v
		}
		if v, ok := fields["price"]; ok && v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "price must be a number")
				return
			}
			input.Price = &price
		}
	} else if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	p, err := h.Svc.Update(r.Context(), id, input, file)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating product")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Error deleting product")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart reads the text fields and the optional "image" file.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) (map[string]string, *ImageFile, bool) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, nil, false
	}

	fields := make(map[string]string)
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	var file *ImageFile
	if f, header, err := r.FormFile("image"); err == nil {
		defer f.Close()
		// Read one byte past the limit so an oversized file is rejected
		// rather than silently truncated.
		data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "failed to read image")
			return nil, nil, false
		}
		if len(data) > maxImageSize {
			httpx.WriteError(w, http.StatusBadRequest, "image must be 10 MiB or smaller")
			return nil, nil, false
		}
		file = &ImageFile{Name: header.Filename, Data: data}
	}

	return fields, file, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid product id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, ErrProductNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, fallback)
}
