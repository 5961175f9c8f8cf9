package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medlease/models"
	"medlease/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 24 * time.Hour

// ErrEmailTaken is returned when signing up with an email already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials covers unknown email and wrong password alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSessionExpired is returned when a token is valid but no longer pinned in
// the session cache.
var ErrSessionExpired = errors.New("session expired")

const defaultRole = "registrar"

var allowedRoles = map[string]bool{
	"registrar":    true,
	"practitioner": true,
	"finance":      true,
	"admin":        true,
}

// Signup creates an operator account and opens a session for it.
func (s *DefaultOperatorService) Signup(input models.OperatorSignupInput) (*AuthSession, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	role := input.Role
	if role == "" {
		role = defaultRole
	}
	if !allowedRoles[role] {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	op := &models.Operator{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(op); err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}
	return s.openSession(op)
}

// Login verifies credentials and opens a session.
func (s *DefaultOperatorService) Login(input models.OperatorLoginInput) (*AuthSession, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	op, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}
	if op == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(op)
}

// Logout unpins the operator's session; outstanding tokens stop verifying.
func (s *DefaultOperatorService) Logout(operatorID string) error {
	ctx := context.Background()
	return s.AuthCache.Del(ctx, utils.AuthCachePrefix+operatorID).Err()
}

func (s *DefaultOperatorService) GetOperator(id string) (*models.Operator, error) {
	return s.Repo.GetByID(id)
}

// VerifySession validates the JWT and checks its hash is still the pinned
// session for the subject operator.
func (s *DefaultOperatorService) VerifySession(token string) (string, error) {
	operatorID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	ctx := context.Background()
	pinned, err := s.AuthCache.Get(ctx, utils.AuthCachePrefix+operatorID).Result()
	if err != nil || pinned != utils.HashToken(token) {
		return "", ErrSessionExpired
	}
	return operatorID, nil
}

func (s *DefaultOperatorService) openSession(op *models.Operator) (*AuthSession, error) {
	token, err := utils.GenerateToken(op.ID, op.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	ctx := context.Background()
	if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+op.ID, utils.HashToken(token), tokenDuration).Err(); err != nil {
		return nil, fmt.Errorf("failed to pin session: %w", err)
	}
	return &AuthSession{Operator: op, Token: token}, nil
}
