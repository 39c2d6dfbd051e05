package order

import (
	"context"
	"database/sql"

	"roastery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListAll(ctx context.Context) ([]AdminOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID, userID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, category, product_name, quantity,
	grind_level, special_instructions, token_amount, order_status, created_at`

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Create"),
		zap.String("order_id", o.ID.String()),
	)

	const q = `
		INSERT INTO orders (
			id, user_id, category, product_name, quantity,
			grind_level, special_instructions, token_amount, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, q,
		o.ID, o.UserID, o.Category, o.ProductName, o.Quantity,
		o.GrindLevel, o.SpecialInstructions, o.TokenAmount, o.OrderStatus,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func scanOrder(s interface {
	Scan(dest ...any) error
}, o *Order) error {
	return s.Scan(
		&o.ID, &o.UserID, &o.Category, &o.ProductName, &o.Quantity,
		&o.GrindLevel, &o.SpecialInstructions, &o.TokenAmount, &o.OrderStatus, &o.CreatedAt,
	)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id,
	), &o)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: order lookup failed",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*Order, error) {
	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1 AND user_id = $2",
		id, userID,
	), &o)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: order lookup failed",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "ListByUser"),
		zap.Int("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, o)
	}

	return res, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]AdminOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "ListAll"),
	)

	const q = `
		SELECT o.id, o.user_id, o.category, o.product_name, o.quantity,
		       o.grind_level, o.special_instructions, o.token_amount, o.order_status, o.created_at,
		       u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []AdminOrder
	for rows.Next() {
		var a AdminOrder
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Category, &a.ProductName, &a.Quantity,
			&a.GrindLevel, &a.SpecialInstructions, &a.TokenAmount, &a.OrderStatus, &a.CreatedAt,
			&a.UserName, &a.UserEmail,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET order_status = $2 WHERE id = $1",
		id, status,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM orders WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: order delete failed",
			zap.String("order_id", id.String()), zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
