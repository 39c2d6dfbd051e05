package product

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, input CreateProductInput, file *ImageFile) (*Product, error) {
	args := m.Called(ctx, input, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput, file *ImageFile) (*Product, error) {
	args := m.Called(ctx, id, input, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterAdmin(r)
	return r
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything).Return([]Product{{Name: "House Blend"}}, nil)

	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var products []Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Get", mock.Anything, id).Return(&Product{ID: id, Name: "House Blend"}, nil)

		h := NewHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "House Blend")
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Get", mock.Anything, id).Return(nil, ErrProductNotFound)

		h := NewHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		h := NewHandler(new(MockService))
		req := httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Create_JSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Create", mock.Anything, CreateProductInput{
			Category:    "coffee",
			Name:        "House Blend",
			Price:       499,
			Description: "Medium roast",
		}, (*ImageFile)(nil)).Return(&Product{Name: "House Blend"}, nil)

		h := NewHandler(svc)
		body := `{"category":"coffee","name":"House Blend","price":499,"description":"Medium roast"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "Product created successfully")
	})

	t.Run("MissingFields", func(t *testing.T) {
		h := NewHandler(new(MockService))
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"House Blend"}`))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		h := NewHandler(new(MockService))
		body := `{"category":"coffee","name":"House Blend","price":0,"description":"Medium roast"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Create_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category", "coffee"))
	require.NoError(t, mw.WriteField("name", "House Blend"))
	require.NoError(t, mw.WriteField("price", "499"))
	require.NoError(t, mw.WriteField("description", "Medium roast"))

	fw, err := mw.CreateFormFile("image", "blend.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in CreateProductInput) bool {
		return in.Name == "House Blend" && in.Price == 499
	}), mock.MatchedBy(func(f *ImageFile) bool {
		return f != nil && f.Name == "blend.jpg" && string(f.Data) == "jpeg-bytes"
	})).Return(&Product{Name: "House Blend"}, nil)

	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Create_Multipart_OversizeImageRejected(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("category", "coffee"))
	require.NoError(t, mw.WriteField("name", "House Blend"))
	require.NoError(t, mw.WriteField("price", "499"))
	require.NoError(t, mw.WriteField("description", "Medium roast"))

	fw, err := mw.CreateFormFile("image", "huge.jpg")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), maxImageSize+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	svc := new(MockService)
	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "10 MiB or smaller")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Update_JSON(t *testing.T) {
	id := uuid.New()
	name := "Dark Roast"

	svc := new(MockService)
	svc.On("Update", mock.Anything, id, UpdateProductInput{Name: &name}, (*ImageFile)(nil)).
		Return(&Product{ID: id, Name: "Dark Roast"}, nil)

	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodPut, "/"+id.String(), strings.NewReader(`{"name":"Dark Roast"}`))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	svc := new(MockService)
	svc.On("Delete", mock.Anything, id).Return(nil)

	h := NewHandler(svc)
	req := httptest.NewRequest(http.MethodDelete, "/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product deleted successfully")
}
