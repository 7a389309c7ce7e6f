package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/internal/users"
	pkgauth "github.com/giftflowhq/giftflow-backend/pkg/auth"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db"
	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type service struct {
	users       userRepository
	limiter     rateLimiter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	limitCfg    config.AuthRateLimitConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	RateLimiter    rateLimiter
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	RateLimit      config.AuthRateLimitConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		limiter:     params.RateLimiter,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		limitCfg:    params.RateLimit,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkRateLimits(ctx, email, clientIP); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}
	user.LastLoginAt = &now

	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResponse{
		AccessToken: token,
		User:        users.FromModel(user),
	}, nil
}

// Register creates a user account. Route middleware restricts this to admins.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse role")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return users.FromModel(user), nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) checkRateLimits(ctx context.Context, email, clientIP string) error {
	if s.limiter == nil {
		return nil
	}

	scopes := []struct {
		scope string
		limit int64
	}{
		{scope: "login:email:" + email, limit: int64(s.limitCfg.LoginEmailLimit)},
		{scope: "login:ip:" + clientIP, limit: int64(s.limitCfg.LoginIPLimit)},
	}
	for _, entry := range scopes {
		if entry.limit <= 0 {
			continue
		}
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, entry.scope, entry.limit, s.limitCfg.LoginWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later")
		}
	}
	return nil
}
