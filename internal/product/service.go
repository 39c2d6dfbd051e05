package product

import (
	"context"

	"roastery-be/internal/logger"
	"roastery-be/internal/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, input CreateProductInput, file *ImageFile) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput, file *ImageFile) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	uploader upload.Uploader
}

func NewService(repo Repository, uploader upload.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create forwards an attached image to the CDN before persisting; only the
// returned URL is stored.
func (s *service) Create(ctx context.Context, input CreateProductInput, file *ImageFile) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Product"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	image := input.Image
	if file != nil {
		url, err := s.uploader.Upload(ctx, file.Name, file.Data)
		if err != nil {
			log.Error("image upload failed", zap.Error(err))
			return nil, err
		}
		image = url
	}

	p := &Product{
		ID:          uuid.New(),
		Category:    input.Category,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       image,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput, file *ImageFile) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Product"),
		zap.String("method", "Update"),
		zap.String("product_id", id.String()),
	)

	if file != nil {
		url, err := s.uploader.Upload(ctx, file.Name, file.Data)
		if err != nil {
			log.Error("image upload failed", zap.Error(err))
			return nil, err
		}
		input.Image = &url
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
