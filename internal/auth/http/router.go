package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AlibekovAA/todo-api/internal/auth/service"
	commonhttp "github.com/AlibekovAA/todo-api/internal/common/http"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
)

type Authenticator interface {
	Register(ctx context.Context, input service.RegisterInput) (service.AuthResult, error)
	Login(ctx context.Context, input service.LoginInput) (service.AuthResult, error)
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type Handler struct {
	auth           Authenticator
	requestTimeout time.Duration
	errors         *commonhttp.ErrorHandler
	log            *logger.Logger
}

func NewHandler(auth Authenticator, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		auth:           auth,
		requestTimeout: requestTimeout,
		errors:         commonhttp.NewErrorHandler(log),
		log:            log,
	}
}

// Register mounts the public auth routes on r.
func (h *Handler) Register(r *mux.Router) {
	sub := r.PathPrefix("/api/auth").Subrouter()
	sub.HandleFunc("/register", h.register).Methods(http.MethodPost)
	sub.HandleFunc("/login", h.login).Methods(http.MethodPost)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_decode_failed"}).Warnf("register failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}
	if err := commonhttp.ValidateRequest(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_decode_failed"}).Warnf("login failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result service.AuthResult) authResponse {
	return authResponse{
		ID:       string(result.ID),
		Username: result.Username,
		Email:    result.Email,
		Token:    result.Token,
	}
}
