package payment

import (
	"context"
	"database/sql"

	"roastery-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Save(ctx context.Context, p *Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	MarkPaid(ctx context.Context, orderID, paymentID, signature string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, p *Payment) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Payment"),
		zap.String("method", "Save"),
		zap.String("order_id", p.OrderID),
	)

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO payments (order_id, amount, status) VALUES ($1, $2, $3)",
		p.OrderID, p.Amount, p.Status,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx,
		`SELECT order_id, payment_id, signature, amount, status, created_at
		 FROM payments WHERE order_id = $1`,
		orderID,
	).Scan(&p.OrderID, &p.PaymentID, &p.Signature, &p.Amount, &p.Status, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: payment lookup failed",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// MarkPaid is a pure overwrite; re-verifying an already-paid payment applies
// the same update again harmlessly.
func (r *repository) MarkPaid(ctx context.Context, orderID, paymentID, signature string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Payment"),
		zap.String("method", "MarkPaid"),
		zap.String("order_id", orderID),
	)

	res, err := r.db.ExecContext(ctx,
		"UPDATE payments SET payment_id = $2, signature = $3, status = $4 WHERE order_id = $1",
		orderID, paymentID, signature, StatusPaid,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
