package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/todo-api/internal/auth/http"
	authservice "github.com/AlibekovAA/todo-api/internal/auth/service"
	"github.com/AlibekovAA/todo-api/internal/common/clock"
	"github.com/AlibekovAA/todo-api/internal/common/config"
	"github.com/AlibekovAA/todo-api/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/todo-api/internal/common/crypto"
	"github.com/AlibekovAA/todo-api/internal/common/db"
	commonhttp "github.com/AlibekovAA/todo-api/internal/common/http"
	"github.com/AlibekovAA/todo-api/internal/common/jwtverify"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	todohttp "github.com/AlibekovAA/todo-api/internal/todo/http"
	todorepo "github.com/AlibekovAA/todo-api/internal/todo/repository"
	todoservice "github.com/AlibekovAA/todo-api/internal/todo/service"
	userrepo "github.com/AlibekovAA/todo-api/internal/user/repository"
)

type App struct {
	Log      *logger.Logger
	Config   config.Config
	Pool     *pgxpool.Pool
	UserRepo userrepo.Repository
	TodoRepo todorepo.Repository
}

// NewApp loads configuration, connects to the store and, unless disabled, migrates the schema.
// An unreachable store terminates the process.
func NewApp(serviceName string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	if cfg.MigrateOnStart {
		if err := db.NewMigrator(pool, log).Up(context.Background()); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &App{
		Log:      log,
		Config:   cfg,
		Pool:     pool,
		UserRepo: userrepo.NewPgRepository(pool),
		TodoRepo: todorepo.NewPgRepository(pool),
	}, nil
}

func (a *App) Handler() http.Handler {
	return NewRouter(RouterDeps{
		Log:            a.Log,
		JWTSecret:      a.Config.JWTSecret,
		RequestTimeout: a.Config.RequestTimeout,
		UserRepo:       a.UserRepo,
		TodoRepo:       a.TodoRepo,
		Clock:          clock.NewRealClock(),
	})
}

type RouterDeps struct {
	Log            *logger.Logger
	JWTSecret      string
	RequestTimeout time.Duration
	UserRepo       userrepo.Repository
	TodoRepo       todorepo.Repository
	Clock          clock.Clock
	Hasher         commoncrypto.PasswordHasher
}

// NewRouter wires services and handlers over the given stores and wraps them in the base middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = commoncrypto.NewBcryptHasher()
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	idGenerator := commoncrypto.NewUUIDGenerator()

	issuer := authservice.NewTokenIssuer(deps.JWTSecret, constants.AccessTokenTTL, deps.Clock)
	authService := authservice.NewAuthService(deps.UserRepo, hasher, idGenerator, issuer, deps.Clock, deps.Log)
	todoService := todoservice.NewTodoService(deps.TodoRepo, idGenerator, deps.Clock, deps.Log)
	guard := jwtverify.NewGuard(deps.JWTSecret, deps.UserRepo, deps.Clock, deps.Log)

	r := mux.NewRouter()
	r.NotFoundHandler = commonhttp.NotFoundHandler()
	r.MethodNotAllowedHandler = commonhttp.MethodNotAllowedHandler()
	r.HandleFunc("/health", commonhttp.HealthHandler()).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authhttp.NewHandler(authService, timeout, deps.Log).Register(r)
	todohttp.NewHandler(todoService, timeout, deps.Log).Register(r, guard.Middleware)

	return commonhttp.BuildBaseHandler(deps.Log, r)
}
