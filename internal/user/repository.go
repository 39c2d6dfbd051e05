package user

import (
	"context"
	"database/sql"
	"errors"

	"roastery-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
	Update(ctx context.Context, id int, input UpdateProfileInput) (User, error)
	List(ctx context.Context) ([]User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, name, email, password, contact_no, is_admin, created_at, updated_at"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password,
		&u.ContactNo, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING "+userColumns,
		name, email, passwordHash,
	))

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1",
		email,
	))
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id int) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	))
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) Update(ctx context.Context, id int, input UpdateProfileInput) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users
		 SET name = COALESCE($2, name),
		     contact_no = COALESCE($3, contact_no),
		     password = COALESCE($4, password),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, input.Name, input.ContactNo, input.Password,
	))

	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		log.Error("db: failed to update user", zap.Int("user_id", id), zap.Error(err))
		return User{}, err
	}

	return u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id",
	)
	if err != nil {
		log.Error("db: failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Password,
			&u.ContactNo, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			log.Error("db: scan failed", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
