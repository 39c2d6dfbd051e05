package product

import (
	"context"
	"database/sql"

	"roastery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, category, name, price, description, image, created_at, updated_at"

func (r *repository) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC",
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Category, &p.Name, &p.Price,
			&p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1",
		id,
	).Scan(
		&p.ID, &p.Category, &p.Name, &p.Price,
		&p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: product lookup failed",
			zap.String("product_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Create"),
		zap.String("product_id", p.ID.String()),
	)

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, category, name, price, description, image)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		p.ID, p.Category, p.Name, p.Price, p.Description, p.Image,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Update"),
		zap.String("product_id", id.String()),
	)

	var p Product
	err := r.db.QueryRowContext(ctx,
		`UPDATE products
		 SET category = COALESCE($2, category),
		     name = COALESCE($3, name),
		     price = COALESCE($4, price),
		     description = COALESCE($5, description),
		     image = COALESCE($6, image),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, input.Category, input.Name, input.Price, input.Description, input.Image,
	).Scan(
		&p.ID, &p.Category, &p.Name, &p.Price,
		&p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		logger.FromCtx(ctx).Error("db: product delete failed",
			zap.String("product_id", id.String()), zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}
