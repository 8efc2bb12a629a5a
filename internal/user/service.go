package user

import (
	"context"
	"fmt"
	"strings"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, string(RoleUser))
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	return token, u, err
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if u.Role == RoleAdmin {
		return ErrAdminUndeletable
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) GetStats(ctx context.Context) (Stats, error) {
	total, err := s.repo.CountByRole(ctx, string(RoleUser))
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalUsers: total}, nil
}
