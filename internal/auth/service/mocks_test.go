package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/AlibekovAA/todo-api/internal/auth/service"
	"github.com/AlibekovAA/todo-api/internal/common/clock"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "11111111-1111-4111-8111-111111111111", nil
}

type mockIssuer struct {
	issueFunc func(userID userdomain.ID) (string, error)
}

func (m *mockIssuer) Issue(userID userdomain.ID) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(userID)
	}
	return "token-" + string(userID), nil
}

type authServiceFixture struct {
	svc    *service.AuthService
	repo   *mockUserRepo
	hasher *mockHasher
	idGen  *mockIDGenerator
	issuer *mockIssuer
	clock  *clock.MockClock
}

func setupAuthService(t *testing.T) authServiceFixture {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	f := authServiceFixture{
		repo:   &mockUserRepo{},
		hasher: &mockHasher{},
		idGen:  &mockIDGenerator{},
		issuer: &mockIssuer{},
		clock:  clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.svc = service.NewAuthService(f.repo, f.hasher, f.idGen, f.issuer, f.clock, log)
	return f
}
