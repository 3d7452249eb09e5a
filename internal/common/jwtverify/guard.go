package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AlibekovAA/todo-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
	commonhttp "github.com/AlibekovAA/todo-api/internal/common/http"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	"github.com/AlibekovAA/todo-api/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

const bearerPrefix = "Bearer "

type contextKey string

const identityKey contextKey = "identity"

type UserFinder interface {
	FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

// Guard resolves bearer tokens to the identity of an existing user.
type Guard struct {
	secret       []byte
	users        UserFinder
	clock        clock.Clock
	log          *logger.Logger
	errorHandler *commonhttp.ErrorHandler
}

func NewGuard(secret string, users UserFinder, clk clock.Clock, log *logger.Logger) *Guard {
	return &Guard{
		secret:       []byte(secret),
		users:        users,
		clock:        clk,
		log:          log,
		errorHandler: commonhttp.NewErrorHandler(log),
	}
}

func (g *Guard) Authenticate(ctx context.Context, rawHeader string) (userdomain.Identity, error) {
	metrics.JWTValidationsTotal.Inc()

	if rawHeader == "" || !strings.HasPrefix(rawHeader, bearerPrefix) {
		metrics.JWTValidationsFailed.WithLabelValues("missing_token").Inc()
		return userdomain.Identity{}, commonerrors.ErrMissingToken
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(rawHeader, bearerPrefix))
	if tokenString == "" {
		metrics.JWTValidationsFailed.WithLabelValues("missing_token").Inc()
		return userdomain.Identity{}, commonerrors.ErrMissingToken
	}

	claims, err := ParseToken(tokenString, g.secret, g.clock.Now)
	if err != nil {
		metrics.JWTValidationsFailed.WithLabelValues(failureReason(err)).Inc()
		g.log.WithFields(ctx, logger.Fields{
			"action": "token_rejected",
		}).Warnf("token verification failed: %v", err)
		return userdomain.Identity{}, commonerrors.ErrInvalidToken.WithCause(err)
	}

	user, err := g.users.FindByID(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.JWTValidationsFailed.WithLabelValues("unknown_user").Inc()
			g.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "token_user_missing",
			}).Warn("token subject no longer exists")
			return userdomain.Identity{}, commonerrors.ErrInvalidToken
		}
		metrics.JWTValidationsFailed.WithLabelValues("store_error").Inc()
		return userdomain.Identity{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return user.Identity(), nil
}

// Middleware rejects requests without a valid token and attaches the identity otherwise.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := g.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			g.errorHandler.HandleError(w, r, err)
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithIdentity(ctx context.Context, identity userdomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func FromContext(ctx context.Context) (userdomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(userdomain.Identity)
	return identity, ok
}
