package address

import (
	"context"

	"roastery-be/internal/logger"
	"roastery-be/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Address, error)
	Create(ctx context.Context, input AddressInput) (*Address, error)
	Update(ctx context.Context, id uuid.UUID, input AddressInput) (*Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Address, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, input AddressInput) (*Address, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
		zap.Int("user_id", userID),
	)

	addr := &Address{
		ID:          uuid.New(),
		UserID:      userID,
		HouseFlatNo: input.HouseFlatNo,
		Landmark:    input.Landmark,
		Street:      input.Street,
		Area:        input.Area,
		City:        input.City,
		State:       input.State,
		Pincode:     input.Pincode,
		IsDefault:   input.IsDefault,
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input AddressInput) (*Address, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	addr, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	addr.HouseFlatNo = input.HouseFlatNo
	addr.Landmark = input.Landmark
	addr.Street = input.Street
	addr.Area = input.Area
	addr.City = input.City
	addr.State = input.State
	addr.Pincode = input.Pincode

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}

	if input.IsDefault && !addr.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, id); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}

	return addr, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", id.String()),
		zap.Int("user_id", userID),
	)

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	log.Info("address deleted")
	return nil
}

func (s *service) SetDefault(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "SetDefault"),
		zap.String("address_id", id.String()),
		zap.Int("user_id", userID),
	)

	if err := s.repo.SetDefault(ctx, userID, id); err != nil {
		log.Error("failed to set default address", zap.Error(err))
		return err
	}

	return nil
}
