package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "user_id", "category", "product_name", "quantity",
	"grind_level", "special_instructions", "token_amount", "order_status", "created_at",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	o := &Order{
		ID:          uuid.New(),
		UserID:      1,
		Category:    "coffee",
		ProductName: "House Blend",
		Quantity:    2,
		TokenAmount: 100,
		OrderStatus: StatusPlaced,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(
				o.ID, o.UserID, o.Category, o.ProductName, o.Quantity,
				nil, nil, o.TokenAmount, string(o.OrderStatus),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), o))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO orders").
			WillReturnError(errors.New("db error"))

		assert.Error(t, repo.Create(context.Background(), o))
	})
}

func TestRepository_GetByIDAndUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(orderCols).AddRow(
			id, 1, "coffee", "House Blend", 2,
			nil, nil, 100.0, "Order Placed", time.Now(),
		)

		mock.ExpectQuery("SELECT .* FROM orders WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(id, 1).
			WillReturnRows(rows)

		o, err := repo.GetByIDAndUser(context.Background(), id, 1)
		require.NoError(t, err)
		assert.Equal(t, id, o.ID)
		assert.Equal(t, StatusPlaced, o.OrderStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(id, 2).
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.GetByIDAndUser(context.Background(), id, 2)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(orderCols).
		AddRow(uuid.New(), 1, "coffee", "House Blend", 2, nil, nil, 100.0, "Order Placed", time.Now()).
		AddRow(uuid.New(), 1, "coffee", "Dark Roast", 1, nil, nil, 50.0, "Shipped", time.Now())

	mock.ExpectQuery("SELECT .* FROM orders WHERE user_id = \\$1").
		WithArgs(1).
		WillReturnRows(rows)

	res, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET order_status").
			WithArgs(id, string(StatusProcessing)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), id, StatusProcessing))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET order_status").
			WithArgs(id, string(StatusProcessing)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, StatusProcessing)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	t.Run("OwnerScoped", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM orders WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(id, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id, 1))
	})

	t.Run("WrongOwner", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM orders WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(id, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id, 2)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
