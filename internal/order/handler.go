package order

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

// Register mounts the owner-scoped order routes. The caller wraps the router
// with the user gate.
func (h *Handler) Register(r chi.Router) {
	r.Post("/create", h.create)
	r.Get("/", h.listMine)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.updateStatus)
	r.Put("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

// RegisterAdmin mounts the admin listing/override routes; the caller wraps
// them with the admin gate.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/orders", h.listAll)
	r.Put("/orders/{id}/status", h.adminUpdateStatus)
}

type statusUpdateReq struct {
	OrderStatus Status `json:"orderStatus"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if input.Category == "" || input.ProductName == "" || input.Quantity <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "category, productName and quantity are required")
		return
	}

	o, err := h.Svc.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating order")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListMine(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	o, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching order")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req statusUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	o, err := h.Svc.UpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating order status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated",
		"order":   o,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Error deleting order")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Order deleted successfully")
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []AdminOrder{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req statusUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	o, err := h.Svc.AdminUpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating order status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated",
		"order":   o,
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid order id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, ErrInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid order status")
	case errors.Is(err, ErrInvalidTransition):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid status transition")
	case errors.Is(err, ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
