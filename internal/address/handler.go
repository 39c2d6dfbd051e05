package address

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

// Register mounts the address routes; the caller wraps them with the user gate.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/default", h.setDefault)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching addresses")
		return
	}
	if addrs == nil {
		addrs = []Address{}
	}
	httpx.WriteJSON(w, http.StatusOK, addrs)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	addr, err := h.Svc.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating address")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Address added successfully",
		"address": addr,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	addr, err := h.Svc.Update(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating address")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Address updated successfully",
		"address": addr,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Error deleting address")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Address deleted successfully")
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.SetDefault(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Error setting default address")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Default address updated")
}

func decodeInput(w http.ResponseWriter, r *http.Request) (AddressInput, bool) {
	var input AddressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return input, false
	}
	if !input.Complete() {
		httpx.WriteError(w, http.StatusBadRequest, "all address fields are required")
		return input, false
	}
	return input, true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid address id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAddressNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Address not found")
	case errors.Is(err, ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
