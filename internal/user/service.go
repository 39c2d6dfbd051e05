package user

import (
	"context"
	"errors"

	"roastery-be/internal/auth"
	"roastery-be/internal/logger"
	"roastery-be/internal/middleware"

	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, input SignupInput) (User, string, error)
	Login(ctx context.Context, input LoginInput) (User, string, error)
	Profile(ctx context.Context) (User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (User, error)
	ListAll(ctx context.Context) ([]User, error)

	// IdentityByID satisfies middleware.IdentityStore for the admin gate.
	IdentityByID(ctx context.Context, id int) (middleware.Identity, error)
}

type service struct {
	repo  Repository
	codec *auth.Codec
}

func NewService(repo Repository, codec *auth.Codec) Service {
	return &service{repo: repo, codec: codec}
}

func (s *service) Signup(ctx context.Context, input SignupInput) (User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "Signup"),
		zap.String("email", input.Email),
	)

	hash, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, "", err
	}

	u, err := s.repo.Create(ctx, input.Name, input.Email, hash)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.Error(err))
		}
		return User{}, "", err
	}

	token, err := s.codec.Issue(u.ID)
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		return User{}, "", err
	}

	log.Info("user registered", zap.Int("user_id", u.ID))
	return u, token, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "Login"),
		zap.String("email", input.Email),
	)

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user", zap.Error(err))
		return User{}, "", err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Warn("password mismatch", zap.Int("user_id", u.ID))
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.ID)
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		return User{}, "", err
	}

	return u, token, nil
}

func (s *service) Profile(ctx context.Context) (User, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return User{}, ErrUserNotFound
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (User, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return User{}, ErrUserNotFound
	}

	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return User{}, err
		}
		input.Password = &hash
	}

	return s.repo.Update(ctx, userID, input)
}

func (s *service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) IdentityByID(ctx context.Context, id int) (middleware.Identity, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return middleware.Identity{}, middleware.ErrIdentityNotFound
		}
		return middleware.Identity{}, err
	}
	return middleware.Identity{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}, nil
}
