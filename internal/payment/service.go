package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"roastery-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	CreateIntent(ctx context.Context, amount float64) (*ProviderOrder, error)
	Verify(ctx context.Context, orderID, paymentID, signature string) error
}

type service struct {
	repo      Repository
	gateway   Gateway
	keySecret string
}

func NewService(repo Repository, gateway Gateway, keySecret string) Service {
	return &service{repo: repo, gateway: gateway, keySecret: keySecret}
}

// CreateIntent converts the amount to paise, creates the provider order and
// records it as pending.
func (s *service) CreateIntent(ctx context.Context, amount float64) (*ProviderOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Payment"),
		zap.String("method", "CreateIntent"),
		zap.Float64("amount", amount),
	)

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())
	amountMinor := int64(math.Round(amount * 100))

	order, err := s.gateway.CreateOrder(ctx, amountMinor, receipt)
	if err != nil {
		log.Error("provider order creation failed", zap.Error(err))
		return nil, err
	}

	p := &Payment{
		OrderID: order.ID,
		Amount:  amount,
		Status:  StatusPending,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		log.Error("failed to persist payment", zap.Error(err))
		return nil, err
	}

	log.Info("payment intent created", zap.String("order_id", order.ID))
	return order, nil
}

// Verify recomputes the provider signature and flips the matching row to
// paid. A mismatch leaves the row untouched.
func (s *service) Verify(ctx context.Context, orderID, paymentID, signature string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Payment"),
		zap.String("method", "Verify"),
		zap.String("order_id", orderID),
	)

	if !VerifySignature(s.keySecret, orderID, paymentID, signature) {
		log.Warn("signature mismatch", zap.String("payment_id", paymentID))
		return ErrSignatureMismatch
	}

	if err := s.repo.MarkPaid(ctx, orderID, paymentID, signature); err != nil {
		log.Error("failed to mark payment paid", zap.Error(err))
		return err
	}

	log.Info("payment verified", zap.String("payment_id", paymentID))
	return nil
}
