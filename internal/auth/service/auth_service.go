package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/todo-api/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/todo-api/internal/common/crypto"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

type Issuer interface {
	Issue(userID userdomain.ID) (string, error)
}

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	issuer      Issuer
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	issuer Issuer,
	clock clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		issuer:      issuer,
		clock:       clock,
		log:         log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	ID       userdomain.ID
	Username string
	Email    string
	Token    string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegisterInput(input); err != nil {
		recordRegistration("validation_failed")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		recordRegistration("exists")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: already exists")
		return AuthResult{}, ErrUserAlreadyExists
	case !errors.Is(err, userrepo.ErrUserNotFound):
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, newInternalError("DATABASE_ERROR", "failed to look up user", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, newInternalError("HASH_FAILED", "failed to hash password", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, newInternalError("ID_GENERATION_FAILED", "failed to generate user id", err)
	}

	user, err := s.repo.Create(ctx, userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrUserAlreadyExists) {
			recordRegistration("exists")
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_user_exists",
			}).Warn("register failed: already exists")
			return AuthResult{}, ErrUserAlreadyExists
		}
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, newInternalError("DATABASE_ERROR", "failed to create user", err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	recordRegistration("success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return newAuthResult(user, token), nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLoginInput(input); err != nil {
		recordLogin("invalid_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			recordLogin("invalid_credentials")
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return AuthResult{}, ErrInvalidCredentials
		}
		recordLogin("error")
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, newInternalError("DATABASE_ERROR", "failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		recordLogin("invalid_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		recordLogin("error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	recordLogin("success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return newAuthResult(user, token), nil
}

func newAuthResult(user userdomain.User, token string) AuthResult {
	return AuthResult{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}
}
