package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "password", "contact_no", "is_admin", "created_at", "updated_at"}

func userRow(id int, name, email, password string, isAdmin bool) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(id, name, email, password, nil, isAdmin, time.Now(), time.Now())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Asha", "asha@example.com", "hashed-pw").
			WillReturnRows(userRow(1, "Asha", "asha@example.com", "hashed-pw", false))

		u, err := repo.Create(context.Background(), "Asha", "asha@example.com", "hashed-pw")
		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.Equal(t, "asha@example.com", u.Email)
		assert.False(t, u.IsAdmin)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Asha", "asha@example.com", "hashed-pw").
			WillReturnError(&pq.Error{Code: uniqueViolation})

		_, err := repo.Create(context.Background(), "Asha", "asha@example.com", "hashed-pw")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("asha@example.com").
			WillReturnRows(userRow(1, "Asha", "asha@example.com", "hashed-pw", false))

		u, err := repo.FindByEmail(context.Background(), "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Asha", u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows(userCols))

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").
			WithArgs(1).
			WillReturnRows(userRow(1, "Asha", "asha@example.com", "hashed-pw", true))

		u, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(userCols))

		_, err := repo.FindByID(context.Background(), 42)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	name := "Asha K"

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(1, name, nil, nil).
			WillReturnRows(userRow(1, "Asha K", "asha@example.com", "hashed-pw", false))

		u, err := repo.Update(context.Background(), 1, UpdateProfileInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Asha K", u.Name)
		assert.Equal(t, "asha@example.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(42, name, nil, nil).
			WillReturnRows(sqlmock.NewRows(userCols))

		_, err := repo.Update(context.Background(), 42, UpdateProfileInput{Name: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(userCols).
		AddRow(1, "Asha", "asha@example.com", "x", nil, true, time.Now(), time.Now()).
		AddRow(2, "Ravi", "ravi@example.com", "y", nil, false, time.Now(), time.Now())

	mock.ExpectQuery("SELECT .* FROM users ORDER BY id").
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Ravi", users[1].Name)
}
