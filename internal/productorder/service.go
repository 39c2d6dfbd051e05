package productorder

import (
	"context"

	"roastery-be/internal/logger"
	"roastery-be/internal/middleware"
	"roastery-be/internal/order"
	"roastery-be/internal/product"
	"roastery-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductSource resolves the referenced catalog product at order time.
type ProductSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// UserSource confirms the ordering user still exists.
type UserSource interface {
	FindByID(ctx context.Context, id int) (user.User, error)
}

type Service interface {
	Create(ctx context.Context, input CreateInput) (*ProductOrder, error)
	ListMine(ctx context.Context) ([]ProductOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*ProductOrder, error)

	ListAll(ctx context.Context) ([]AdminProductOrder, error)
	AdminUpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*ProductOrder, error)
}

type service struct {
	repo     Repository
	products ProductSource
	users    UserSource
}

func NewService(repo Repository, products ProductSource, users UserSource) Service {
	return &service{repo: repo, products: products, users: users}
}

// Create snapshots the product's name, description and image, and records
// price = product price × quantity at creation time.
func (s *service) Create(ctx context.Context, input CreateInput) (*ProductOrder, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "ProductOrder"),
		zap.String("method", "Create"),
		zap.Int("user_id", userID),
		zap.String("product_id", input.ProductID.String()),
	)

	p, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	po := &ProductOrder{
		ID:          uuid.New(),
		UserID:      u.ID,
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price * float64(input.Quantity),
		Quantity:    input.Quantity,
		OrderStatus: order.StatusPlaced,
	}

	if err := s.repo.Create(ctx, po); err != nil {
		log.Error("failed to create product order", zap.Error(err))
		return nil, err
	}

	log.Info("product order created",
		zap.String("order_id", po.ID.String()),
		zap.Float64("price", po.Price),
	)
	return po, nil
}

func (s *service) ListMine(ctx context.Context) ([]ProductOrder, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*ProductOrder, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	po, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return s.applyTransition(ctx, po, status)
}

func (s *service) ListAll(ctx context.Context) ([]AdminProductOrder, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) AdminUpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*ProductOrder, error) {
	po, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, po, status)
}

func (s *service) applyTransition(ctx context.Context, po *ProductOrder, status order.Status) (*ProductOrder, error) {
	if !order.ValidStatus(status) {
		return nil, order.ErrInvalidStatus
	}
	if !order.CanTransition(po.OrderStatus, status) {
		return nil, order.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, po.ID, status); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product order status updated",
		zap.String("order_id", po.ID.String()),
		zap.String("from", string(po.OrderStatus)),
		zap.String("to", string(status)),
	)

	po.OrderStatus = status
	return po, nil
}
