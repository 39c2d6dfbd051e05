package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"
	"roastery-be/internal/order"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderSource supplies the orders embedded in the profile response.
type OrderSource interface {
	ListMine(ctx context.Context) ([]order.Order, error)
}

type Handler struct {
	Svc    Service
	Orders OrderSource
}

func NewHandler(svc Service, orders OrderSource) *Handler {
	return &Handler{Svc: svc, Orders: orders}
}

// RegisterPublic mounts the unauthenticated signup/login routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
}

// RegisterUser mounts the token-gated profile routes.
func (h *Handler) RegisterUser(r chi.Router) {
	r.Get("/user", h.profile)
	r.Put("/update", h.update)
}

// RegisterAdmin mounts the admin-gated user listing.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/all", h.listAll)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var input SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	u, token, err := h.Svc.Signup(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			httpx.WriteError(w, http.StatusConflict, "User already exists")
			return
		}
		h.writeServerError(w, r, err, "Error registering user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    u,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if input.Email == "" || input.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.Svc.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.writeServerError(w, r, err, "Error logging in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.Profile(r.Context())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.writeServerError(w, r, err, "Error fetching profile")
		return
	}

	orders, err := h.Orders.ListMine(r.Context())
	if err != nil {
		h.writeServerError(w, r, err, "Error fetching profile")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user":   u,
		"orders": orders,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var input UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if input.Name == nil && input.ContactNo == nil && input.Password == nil {
		httpx.WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	u, err := h.Svc.UpdateProfile(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.writeServerError(w, r, err, "Error updating profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    u,
	})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.ListAll(r.Context())
	if err != nil {
		h.writeServerError(w, r, err, "Error fetching users")
		return
	}
	if users == nil {
		users = []User{}
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) writeServerError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger.FromCtx(r.Context()).Error(fallback, zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, fallback)
}
