package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roastery-be/internal/middleware"
	"roastery-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, input SignupInput) (User, string, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(User), args.String(1), args.Error(2)
}

func (m *MockService) Login(ctx context.Context, input LoginInput) (User, string, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(User), args.String(1), args.Error(2)
}

func (m *MockService) Profile(ctx context.Context) (User, error) {
	args := m.Called(ctx)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockService) IdentityByID(ctx context.Context, id int) (middleware.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(middleware.Identity), args.Error(1)
}

type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) ListMine(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.RegisterPublic(r)
	h.RegisterUser(r)
	h.RegisterAdmin(r)
	return r
}

func TestHandler_Signup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Signup", mock.Anything, SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret123"}).
			Return(User{ID: 1, Name: "Asha", Email: "asha@example.com"}, "tok-123", nil)

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "tok-123", body["token"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		h := NewHandler(new(MockService), new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"email":"asha@example.com"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadEmail", func(t *testing.T) {
		h := NewHandler(new(MockService), new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"name":"Asha","email":"not-an-email","password":"secret123"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Signup", mock.Anything, mock.Anything).Return(User{}, "", ErrEmailExists)

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InternalErrorLeaksNothing", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Signup", mock.Anything, mock.Anything).
			Return(User{}, "", errors.New("pq: connection refused on 10.0.0.3"))

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Login", mock.Anything, LoginInput{Email: "asha@example.com", Password: "secret123"}).
			Return(User{ID: 1}, "tok-123", nil)

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"email":"asha@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "tok-123")
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Login", mock.Anything, mock.Anything).Return(User{}, "", ErrInvalidCredentials)

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})
}

func TestHandler_Profile(t *testing.T) {
	svc := new(MockService)
	svc.On("Profile", mock.Anything).Return(User{ID: 7, Name: "Asha"}, nil)

	orders := new(MockOrderSource)
	orders.On("ListMine", mock.Anything).Return([]order.Order{{UserID: 7, ProductName: "House Blend"}}, nil)

	h := NewHandler(svc, orders)
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User   User          `json:"user"`
		Orders []order.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Asha", body.User.Name)
	assert.Len(t, body.Orders, 1)
}

func TestHandler_Update(t *testing.T) {
	t.Run("NothingToUpdate", func(t *testing.T) {
		h := NewHandler(new(MockService), new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPut, "/update", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		name := "Asha K"
		svc := new(MockService)
		svc.On("UpdateProfile", mock.Anything, UpdateProfileInput{Name: &name}).
			Return(User{ID: 7, Name: "Asha K"}, nil)

		h := NewHandler(svc, new(MockOrderSource))
		req := httptest.NewRequest(http.MethodPut, "/update", strings.NewReader(`{"name":"Asha K"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Profile updated successfully")
	})
}

func TestHandler_ListAll(t *testing.T) {
	svc := new(MockService)
	svc.On("ListAll", mock.Anything).Return([]User{{ID: 1}, {ID: 2}}, nil)

	h := NewHandler(svc, new(MockOrderSource))
	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var users []User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestUserJSON_HidesPassword(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Name: "Asha", Password: "hashed-pw"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hashed-pw")
}
