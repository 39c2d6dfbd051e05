package order

import (
	"context"

	"roastery-be/internal/logger"
	"roastery-be/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	ListMine(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Admin operations bypass owner scoping intentionally.
	ListAll(ctx context.Context) ([]AdminOrder, error)
	AdminUpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "Create"),
		zap.Int("user_id", userID),
	)

	o := &Order{
		ID:                  uuid.New(),
		UserID:              userID,
		Category:            input.Category,
		ProductName:         input.ProductName,
		Quantity:            input.Quantity,
		GrindLevel:          input.GrindLevel,
		SpecialInstructions: input.SpecialInstructions,
		TokenAmount:         input.TokenAmount,
		OrderStatus:         StatusPlaced,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.String("order_id", o.ID.String()))
	return o, nil
}

func (s *service) ListMine(ctx context.Context) ([]Order, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetByIDAndUser(ctx, id, userID)
}

// UpdateStatus moves an owned order along the transition table.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	o, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, o, status)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	return s.repo.Delete(ctx, id, userID)
}

func (s *service) ListAll(ctx context.Context) ([]AdminOrder, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) AdminUpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, o, status)
}

func (s *service) applyTransition(ctx context.Context, o *Order, status Status) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if !CanTransition(o.OrderStatus, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, status); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("from", string(o.OrderStatus)),
		zap.String("to", string(status)),
	)

	o.OrderStatus = status
	return o, nil
}
