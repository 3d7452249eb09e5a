package jwtverify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/todo-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
	"github.com/AlibekovAA/todo-api/internal/common/jwtverify"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type mockUserFinder struct {
	findByIDFunc func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupGuard(t *testing.T) (*jwtverify.Guard, *mockUserFinder, *clock.MockClock) {
	t.Helper()
	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	finder := &mockUserFinder{
		findByIDFunc: func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
			if id != "user-1" {
				return userdomain.User{}, userrepo.ErrUserNotFound
			}
			return userdomain.User{
				ID:           "user-1",
				Username:     "alice",
				Email:        "a@x.io",
				PasswordHash: "secret-hash",
				CreatedAt:    testNow,
			}, nil
		},
	}
	mockClock := clock.NewMockClock(testNow)
	return jwtverify.NewGuard(testSecret, finder, mockClock, log), finder, mockClock
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(testNow),
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}
}

func TestGuard_Authenticate_Success(t *testing.T) {
	guard, _, _ := setupGuard(t)
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1"))

	identity, err := guard.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if identity.ID != "user-1" || identity.Username != "alice" || identity.Email != "a@x.io" {
		t.Errorf("unexpected identity %+v", identity)
	}
}

func TestGuard_Authenticate_MissingToken(t *testing.T) {
	guard, _, _ := setupGuard(t)
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1"))

	cases := map[string]string{
		"empty":        "",
		"basic scheme": "Basic dXNlcjpwYXNz",
		"no scheme":    token,
		"bearer only":  "Bearer ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := guard.Authenticate(context.Background(), header)
			if !errors.Is(err, commonerrors.ErrMissingToken) {
				t.Fatalf("expected ErrMissingToken, got %v", err)
			}
		})
	}
}

func TestGuard_Authenticate_InvalidToken(t *testing.T) {
	guard, _, _ := setupGuard(t)

	noSub := validClaims("")
	noExp := jwt.RegisteredClaims{Subject: "user-1", IssuedAt: jwt.NewNumericDate(testNow)}

	cases := map[string]string{
		"garbage":      "Bearer not.a.token",
		"wrong secret": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("a-completely-different-secret-value!!"), validClaims("user-1")),
		"wrong alg":    "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("user-1")),
		"missing sub":  "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSub),
		"missing exp":  "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"unknown user": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-2")),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := guard.Authenticate(context.Background(), header)
			if !errors.Is(err, commonerrors.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestGuard_Authenticate_ExpiredToken(t *testing.T) {
	guard, _, mockClock := setupGuard(t)
	header := "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1"))

	mockClock.Advance(59 * time.Minute)
	if _, err := guard.Authenticate(context.Background(), header); err != nil {
		t.Fatalf("token should still be valid, got %v", err)
	}

	mockClock.Advance(2 * time.Minute)
	_, err := guard.Authenticate(context.Background(), header)
	if !errors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestGuard_Authenticate_StoreError(t *testing.T) {
	guard, finder, _ := setupGuard(t)
	finder.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}
	header := "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1"))

	_, err := guard.Authenticate(context.Background(), header)
	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("expected 500 domain error, got %v", err)
	}
}

func TestGuard_Middleware(t *testing.T) {
	guard, _, _ := setupGuard(t)
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1"))

	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		identity, ok := jwtverify.FromContext(r.Context())
		if !ok {
			t.Error("expected identity in context")
		}
		if identity.ID != "user-1" {
			t.Errorf("expected user-1, got %s", identity.ID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	handler := guard.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Fatal("expected next handler to run")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestGuard_Middleware_RejectsWithoutCallingNext(t *testing.T) {
	guard, _, _ := setupGuard(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})
	handler := guard.Middleware(next)

	cases := map[string]struct {
		header string
		code   string
	}{
		"no header":  {"", "MISSING_TOKEN"},
		"bad token":  {"Bearer abc", "INVALID_TOKEN"},
		"wrong type": {"Token abc", "MISSING_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var env struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if env.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, env.Code)
			}
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	if _, ok := jwtverify.FromContext(context.Background()); ok {
		t.Error("expected no identity in empty context")
	}
}
