package productorder

import (
	"context"
	"database/sql"

	"roastery-be/internal/logger"
	"roastery-be/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, po *ProductOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*ProductOrder, error)
	GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*ProductOrder, error)
	ListByUser(ctx context.Context, userID int) ([]ProductOrder, error)
	ListAll(ctx context.Context) ([]AdminProductOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const columns = `id, user_id, product_id, name, description, image,
	price, quantity, order_status, created_at`

func (r *repository) Create(ctx context.Context, po *ProductOrder) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "ProductOrder"),
		zap.String("method", "Create"),
		zap.String("order_id", po.ID.String()),
	)

	const q = `
		INSERT INTO product_orders (
			id, user_id, product_id, name, description, image,
			price, quantity, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, q,
		po.ID, po.UserID, po.ProductID, po.Name, po.Description, po.Image,
		po.Price, po.Quantity, po.OrderStatus,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func scanRow(s interface {
	Scan(dest ...any) error
}, po *ProductOrder) error {
	return s.Scan(
		&po.ID, &po.UserID, &po.ProductID, &po.Name, &po.Description, &po.Image,
		&po.Price, &po.Quantity, &po.OrderStatus, &po.CreatedAt,
	)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ProductOrder, error) {
	var po ProductOrder
	err := scanRow(r.db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM product_orders WHERE id = $1", id,
	), &po)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: product order lookup failed",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &po, nil
}

func (r *repository) GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*ProductOrder, error) {
	var po ProductOrder
	err := scanRow(r.db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM product_orders WHERE id = $1 AND user_id = $2",
		id, userID,
	), &po)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: product order lookup failed",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &po, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]ProductOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "ProductOrder"),
		zap.String("method", "ListByUser"),
		zap.Int("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+columns+" FROM product_orders WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []ProductOrder
	for rows.Next() {
		var po ProductOrder
		if err := scanRow(rows, &po); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, po)
	}

	return res, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]AdminProductOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "ProductOrder"),
		zap.String("method", "ListAll"),
	)

	const q = `
		SELECT po.id, po.user_id, po.product_id, po.name, po.description, po.image,
		       po.price, po.quantity, po.order_status, po.created_at,
		       u.name, u.email
		FROM product_orders po
		JOIN users u ON u.id = po.user_id
		ORDER BY po.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []AdminProductOrder
	for rows.Next() {
		var a AdminProductOrder
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ProductID, &a.Name, &a.Description, &a.Image,
			&a.Price, &a.Quantity, &a.OrderStatus, &a.CreatedAt,
			&a.UserName, &a.UserEmail,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "ProductOrder"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	res, err := r.db.ExecContext(ctx,
		"UPDATE product_orders SET order_status = $2 WHERE id = $1",
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
