package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "category", "name", "price", "description", "image", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	p := &Product{
		ID:          uuid.New(),
		Category:    "coffee",
		Name:        "House Blend",
		Price:       499,
		Description: "Medium roast",
		Image:       "https://cdn.example.com/blend.jpg",
	}

	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.ID, p.Category, p.Name, p.Price, p.Description, p.Image).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.False(t, p.CreatedAt.IsZero())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productCols).
				AddRow(id, "coffee", "House Blend", 499.0, "Medium roast", "", time.Now(), time.Now()))

		p, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "House Blend", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productCols))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Update_CoalescesUntouchedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()
	name := "Dark Roast"

	mock.ExpectQuery("UPDATE products").
		WithArgs(id, nil, name, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(id, "coffee", "Dark Roast", 499.0, "Medium roast", "", time.Now(), time.Now()))

	p, err := repo.Update(context.Background(), id, UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dark Roast", p.Name)
	assert.Equal(t, "coffee", p.Category)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrProductNotFound)
	})
}
