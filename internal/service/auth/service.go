package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medtrack/clinic-api/internal/email"
	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/auth"
	"github.com/medtrack/clinic-api/pkg/errors"
	"github.com/medtrack/clinic-api/pkg/security"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Unauthorized(fmt.Errorf("invalid email or password"))
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthorized(fmt.Errorf("invalid email or password"))
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.TokenResponse{User: user, Token: token}, nil
}

// Register creates a staff account. Doctors start with empty shift mappings
// and a zero salary.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.BadRequest("user with this email already exists", nil)
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.BadRequest("invalid password", err)
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.UserRoleDoctor
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		Phone:        req.Phone,
		ShiftRates:   model.ShiftRates{},
		ShiftCounts:  model.ShiftCounts{},
		TotalSalary:  0,
	}
	if role == model.UserRoleDoctor {
		user.Specialization = req.Specialization
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	// Best-effort; registration succeeds even when mail delivery fails.
	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Name); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.TokenResponse{User: user, Token: token}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("user", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}
	return user, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	return claims, nil
}
