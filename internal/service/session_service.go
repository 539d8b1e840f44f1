package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/internal/models"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/session"
)

// DefaultSharedPassword is the password every demo account signs in with.
const DefaultSharedPassword = "password123"

type userFinder interface {
	FindUser(ctx context.Context, id string, role models.UserRole) (*models.User, error)
}

// SignInRequest is the login form payload.
type SignInRequest struct {
	Role     models.UserRole `json:"role" form:"role" validate:"required,oneof=admin teacher student"`
	UserID   string          `json:"userId" form:"userId" validate:"required"`
	Password string          `json:"password" form:"password" validate:"required"`
}

// SessionService signs users in and resolves session tokens back to live users.
type SessionService struct {
	users        userFinder
	codec        session.Codec
	passwordHash []byte
	validator    *validator.Validate
	metrics      *MetricsService
	logger       *zap.Logger
}

// NewSessionService constructs the session service. An empty passwordHash
// hashes DefaultSharedPassword.
func NewSessionService(users userFinder, codec session.Codec, passwordHash string, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) (*SessionService, error) {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hash := []byte(passwordHash)
	if passwordHash == "" {
		generated, err := bcrypt.GenerateFromPassword([]byte(DefaultSharedPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash shared password: %w", err)
		}
		hash = generated
	}
	return &SessionService{
		users:        users,
		codec:        codec,
		passwordHash: hash,
		validator:    validate,
		metrics:      metrics,
		logger:       logger,
	}, nil
}

// SignIn checks the credentials and issues a session token. Every failure
// collapses to ErrInvalidCredentials.
func (s *SessionService) SignIn(ctx context.Context, req SignInRequest) (*dto.SignInResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	user, err := s.users.FindUser(ctx, req.UserID, req.Role)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("sign in lookup failed", zap.String("user_id", req.UserID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign in")
		}
		s.metrics.RecordSignIn(string(req.Role), false)
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		s.metrics.RecordSignIn(string(req.Role), false)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.codec.Encode(session.Payload{UserID: user.ID, Role: string(user.Role)})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue session")
	}
	s.metrics.RecordSignIn(string(user.Role), true)
	s.logger.Info("user signed in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return &dto.SignInResult{User: user, Token: token, Redirect: user.Role.DashboardPath()}, nil
}

// Resolve decodes token and re-reads the user from the store. A missing,
// tampered or expired token, or a user that no longer exists, is
// ErrUnauthorized.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	payload, err := s.codec.Decode(token)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}
	role := models.UserRole(payload.Role)
	if !role.Valid() {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.users.FindUser(ctx, payload.UserID, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session")
	}
	return user, nil
}

// Session reports whether token belongs to a live user.
func (s *SessionService) Session(ctx context.Context, token string) dto.SessionResponse {
	user, err := s.Resolve(ctx, token)
	if err != nil {
		return dto.SessionResponse{IsAuthenticated: false}
	}
	return dto.SessionResponse{IsAuthenticated: true, User: user}
}
