package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"userauth/internal/model"
	"userauth/internal/repository"
	"userauth/internal/utils"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingFields means a required registration field was empty after trimming.
	ErrMissingFields = errors.New("missing required fields")
	// ErrForbiddenRole means the caller tried to self-register with a role
	// other than "user". Self-service registration cannot create admins.
	ErrForbiddenRole = errors.New("forbidden role")
	// ErrUserAlreadyExists means a user with the given phone is already registered.
	ErrUserAlreadyExists = errors.New("user already exists with provided details")
	// ErrInvalidCredentials covers every login failure: unknown phone, wrong
	// password, even a store failure during lookup. The caller never learns
	// which one happened.
	ErrInvalidCredentials = errors.New("invalid phone number or password")
)

// AuthService provides the registration and login workflows
type AuthService interface {
	Register(ctx context.Context, fullName, phone, password, role string) (*model.User, error)
	Login(ctx context.Context, phone, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtUtil    *utils.JWTUtil
	bcryptCost int
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, bcryptCost int, log zerolog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtUtil:    jwtUtil,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register creates a new user account. The phone number is the natural key:
// a duplicate is rejected by the pre-check in the common case and by the
// unique index when two requests race past it.
func (s *authService) Register(ctx context.Context, fullName, phone, password, role string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" || phone == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingFields
	}

	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser {
		s.log.Warn().Str("role", role).Msg("unauthorized role provided on registration")
		return nil, ErrForbiddenRole
	}

	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	// Hash only after the duplicate pre-check; this is the expensive step.
	hashedPassword, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FullName:     fullName,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Msg("registration successful")
	return user, nil
}

// Login verifies credentials and returns a signed access token
func (s *authService) Login(ctx context.Context, phone, password string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		// Deliberately folded into the uniform failure so the response never
		// reveals whether the phone exists. The cause still gets logged.
		s.log.Error().Err(err).Msg("login lookup failed")
		return "", ErrInvalidCredentials
	}
	if user == nil {
		s.log.Warn().Str("phone", phone).Msg("login failed: user not found")
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn().Str("phone", phone).Msg("login failed: incorrect password")
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role, user.FullName)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info().Str("phone", phone).Msg("user logged in successfully")
	return token, nil
}
