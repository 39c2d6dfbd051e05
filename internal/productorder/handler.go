package productorder

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"
	"roastery-be/internal/order"
	"roastery-be/internal/product"
	"roastery-be/internal/user"

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

// Register mounts the owner-scoped product order routes; the caller wraps
// them with the user gate.
func (h *Handler) Register(r chi.Router) {
	r.Post("/create", h.create)
	r.Get("/user", h.listMine)
	r.Put("/{id}/status", h.updateStatus)
}

// RegisterAdmin mounts the admin listing/override routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/product-orders", h.listAll)
	r.Put("/product-orders/{id}/status", h.adminUpdateStatus)
}

// RegisterAdminList exposes the admin listing at the collection root, for the
// legacy GET /api/productorder mount.
func (h *Handler) RegisterAdminList(r chi.Router) {
	r.Get("/", h.listAll)
}

type statusUpdateReq struct {
	OrderStatus order.Status `json:"orderStatus"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if req.Quantity <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	po, err := h.Svc.Create(r.Context(), CreateInput{ProductID: productID, Quantity: req.Quantity})
	if err != nil {
		h.writeServiceError(w, r, err, "Error creating order")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   po,
	})
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListMine(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []ProductOrder{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
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

	po, err := h.Svc.UpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating order status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully",
		"order":   po,
	})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []AdminProductOrder{}
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

	po, err := h.Svc.AdminUpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		h.writeServiceError(w, r, err, "Error updating order status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully",
		"order":   po,
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
	case errors.Is(err, product.ErrProductNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, user.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, order.ErrInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid order status")
	case errors.Is(err, order.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid status transition")
	case errors.Is(err, ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
