package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlibekovAA/todo-api/internal/auth/service"
	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

func TestAuthService_Login_Success(t *testing.T) {
	f := setupAuthService(t)

	f.repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email != "a@x.io" {
			t.Errorf("expected email a@x.io, got %s", email)
		}
		return userdomain.User{
			ID:           "user-1",
			Username:     "alice",
			Email:        "a@x.io",
			PasswordHash: "hashed_pw1",
		}, nil
	}
	f.hasher.compareFunc = func(hash string, password string) error {
		if hash != "hashed_pw1" || password != "pw1" {
			return errors.New("password mismatch")
		}
		return nil
	}

	result, err := f.svc.Login(context.Background(), service.LoginInput{Email: "a@x.io", Password: "pw1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != "user-1" || result.Username != "alice" || result.Email != "a@x.io" {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Token != "token-user-1" {
		t.Errorf("unexpected token %q", result.Token)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserAreIndistinguishable(t *testing.T) {
	wrongPassword := setupAuthService(t)
	wrongPassword.repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "user-1", Email: email, PasswordHash: "hashed_pw1"}, nil
	}
	wrongPassword.hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	unknownUser := setupAuthService(t)
	unknownUser.repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	_, errWrong := wrongPassword.svc.Login(context.Background(), service.LoginInput{Email: "a@x.io", Password: "nope"})
	_, errUnknown := unknownUser.svc.Login(context.Background(), service.LoginInput{Email: "ghost@x.io", Password: "pw1"})

	if !errors.Is(errWrong, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrong)
	}
	if !errors.Is(errUnknown, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Errorf("messages differ: %q vs %q", errWrong.Error(), errUnknown.Error())
	}

	domainErr, _ := commonerrors.AsDomainError(errWrong)
	if domainErr.HTTPStatus() != 401 {
		t.Errorf("expected 401, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "invalid email or password" {
		t.Errorf("unexpected message %q", domainErr.Message())
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		t.Fatal("lookup must not happen for empty input")
		return userdomain.User{}, nil
	}

	_, err := f.svc.Login(context.Background(), service.LoginInput{})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	f := setupAuthService(t)
	f.repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection reset")
	}

	_, err := f.svc.Login(context.Background(), service.LoginInput{Email: "a@x.io", Password: "pw1"})
	if errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatal("store failure must not be reported as bad credentials")
	}
	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != 500 {
		t.Fatalf("expected 500 domain error, got %v", err)
	}
}
