package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/church-cms/internal/auth"
	"github.com/spec-kit/church-cms/internal/config"
	"github.com/spec-kit/church-cms/internal/domain"
	"github.com/spec-kit/church-cms/internal/repository"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// AuthService coordinates login and administrator management.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, admins repository.AdminRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates an administrator and mints a bearer token. Unknown
// logins and wrong passwords produce the same response, so the endpoint does
// not reveal which logins exist.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, time.Time, error) {
	admin, err := s.admins.GetByLogin(ctx, login)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", time.Time{}, apperrors.NewUnauthorized("Wrong password")
		}
		return "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Wrong password")
	}
	return s.tokenMgr.GenerateToken(admin.ID, admin.Login, domain.RoleAdmin)
}

// Logout is a no-op: tokens are stateless and cannot be revoked server-side,
// the client simply discards its copy.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// EnsureDefaultAdmin provisions the bootstrap administrator on first start.
// Idempotent: an existing login is left untouched.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminLogin == "" || cfg.AdminPassword == "" {
		s.logger.Info("bootstrap admin not configured; skipping")
		return nil
	}

	if _, err := s.admins.GetByLogin(ctx, cfg.AdminLogin); err == nil {
		return nil
	} else if err != pgx.ErrNoRows {
		return err
	}

	if _, err := s.CreateAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		return err
	}
	s.logger.Info("default admin created", zap.String("login", cfg.AdminLogin))
	return nil
}

// ListAdmins returns all administrators.
func (s *AuthService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}

// GetAdmin returns one administrator by id.
func (s *AuthService) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Admin")
		}
		return nil, err
	}
	return admin, nil
}

// CreateAdmin provisions a new administrator, storing only the password hash.
func (s *AuthService) CreateAdmin(ctx context.Context, login, password string) (*domain.Admin, error) {
	if login == "" || password == "" {
		return nil, apperrors.NewValidationError("Login and password required!")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{Login: login, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateAdmin applies a partial update: only the supplied login and password
// change; the password is re-hashed before storage.
func (s *AuthService) UpdateAdmin(ctx context.Context, id, login, password string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Admin")
		}
		return nil, err
	}

	if login != "" {
		admin.Login = login
	}
	if password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Admin")
		}
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin removes an administrator by id.
func (s *AuthService) DeleteAdmin(ctx context.Context, id string) error {
	if err := s.admins.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Admin")
		}
		return err
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
