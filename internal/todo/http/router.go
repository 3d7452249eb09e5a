package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
	commonhttp "github.com/AlibekovAA/todo-api/internal/common/http"
	"github.com/AlibekovAA/todo-api/internal/common/jwtverify"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	"github.com/AlibekovAA/todo-api/internal/todo/domain"
	"github.com/AlibekovAA/todo-api/internal/todo/service"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
)

type TodoService interface {
	List(ctx context.Context, ownerID userdomain.ID) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID userdomain.ID, text string) (domain.Todo, error)
	Update(ctx context.Context, ownerID userdomain.ID, todoID domain.ID, input service.UpdateInput) (domain.Todo, error)
	Delete(ctx context.Context, ownerID userdomain.ID, todoID domain.ID) error
}

type createTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

type updateTodoRequest struct {
	Completed *bool `json:"completed"`
}

type Handler struct {
	todos          TodoService
	requestTimeout time.Duration
	errors         *commonhttp.ErrorHandler
	log            *logger.Logger
}

func NewHandler(todos TodoService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		todos:          todos,
		requestTimeout: requestTimeout,
		errors:         commonhttp.NewErrorHandler(log),
		log:            log,
	}
}

// Register mounts the task routes on r behind auth.
func (h *Handler) Register(r *mux.Router, auth mux.MiddlewareFunc) {
	sub := r.PathPrefix("/api/todos").Subrouter()
	sub.Use(auth)
	sub.HandleFunc("", h.list).Methods(http.MethodGet)
	sub.HandleFunc("", h.create).Methods(http.MethodPost)
	sub.HandleFunc("/{id}", h.update).Methods(http.MethodPatch)
	sub.HandleFunc("/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	todos, err := h.todos.List(ctx, identity.ID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, todos)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "todo_decode_failed"}).Warnf("create todo failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}
	if err := commonhttp.ValidateRequest(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	todo, err := h.todos.Create(ctx, identity.ID, req.Text)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, todo)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "todo_decode_failed"}).Warnf("update todo failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	todo, err := h.todos.Update(ctx, identity.ID, domain.ID(mux.Vars(r)["id"]), service.UpdateInput{
		Completed: req.Completed,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, todo)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.todos.Delete(ctx, identity.ID, domain.ID(mux.Vars(r)["id"])); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "Todo deleted"})
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (userdomain.Identity, bool) {
	identity, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingToken)
		return userdomain.Identity{}, false
	}
	return identity, true
}
