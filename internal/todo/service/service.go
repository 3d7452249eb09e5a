package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AlibekovAA/todo-api/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/todo-api/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
	"github.com/AlibekovAA/todo-api/internal/common/logger"
	"github.com/AlibekovAA/todo-api/internal/todo/domain"
	todorepo "github.com/AlibekovAA/todo-api/internal/todo/repository"
	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
)

type UpdateInput struct {
	Completed *bool
}

type TodoService struct {
	repo        todorepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTodoService(
	repo todorepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *TodoService {
	return &TodoService{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

func (s *TodoService) List(ctx context.Context, ownerID userdomain.ID) ([]domain.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		recordOperation("list", "error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"action":  "todo_list_failed",
		}).Errorf("list todos failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}

	recordOperation("list", "success")
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID userdomain.ID, text string) (domain.Todo, error) {
	if strings.TrimSpace(text) == "" {
		recordOperation("create", "validation_failed")
		return domain.Todo{}, commonerrors.ErrValidation.WithCause(errors.New("missing or invalid fields: text"))
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordOperation("create", "error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"action":  "todo_id_generation_failed",
		}).Errorf("create todo failed: id generation error: %v", err)
		return domain.Todo{}, commonerrors.ErrInternalError.WithCause(err)
	}

	todo, err := s.repo.Create(ctx, domain.Todo{
		ID:        domain.ID(id),
		Text:      text,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		recordOperation("create", "error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"action":  "todo_create_failed",
		}).Errorf("create todo failed: %v", err)
		return domain.Todo{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	recordOperation("create", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"todo_id": string(todo.ID),
		"action":  "todo_created",
	}).Info("todo created")
	return todo, nil
}

// Update applies input to a task owned by ownerID. A nil Completed leaves the task unchanged.
func (s *TodoService) Update(ctx context.Context, ownerID userdomain.ID, todoID domain.ID, input UpdateInput) (domain.Todo, error) {
	if !commoncrypto.IsValidID(string(todoID)) {
		recordOperation("update", "not_found")
		return domain.Todo{}, ErrTodoNotFound
	}

	var (
		todo domain.Todo
		err  error
	)
	if input.Completed == nil {
		todo, err = s.repo.FindByIDAndOwner(ctx, todoID, ownerID)
	} else {
		todo, err = s.repo.UpdateCompleted(ctx, todoID, ownerID, *input.Completed)
	}
	if err != nil {
		return domain.Todo{}, s.mapRepoError(ctx, "update", ownerID, todoID, err)
	}

	recordOperation("update", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   string(ownerID),
		"todo_id":   string(todo.ID),
		"completed": todo.Completed,
		"action":    "todo_updated",
	}).Info("todo updated")
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID userdomain.ID, todoID domain.ID) error {
	if !commoncrypto.IsValidID(string(todoID)) {
		recordOperation("delete", "not_found")
		return ErrTodoNotFound
	}

	if err := s.repo.DeleteByIDAndOwner(ctx, todoID, ownerID); err != nil {
		return s.mapRepoError(ctx, "delete", ownerID, todoID, err)
	}

	recordOperation("delete", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"todo_id": string(todoID),
		"action":  "todo_deleted",
	}).Info("todo deleted")
	return nil
}

func (s *TodoService) mapRepoError(ctx context.Context, operation string, ownerID userdomain.ID, todoID domain.ID, err error) error {
	if errors.Is(err, todorepo.ErrTodoNotFound) {
		recordOperation(operation, "not_found")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"todo_id": string(todoID),
			"action":  "todo_" + operation + "_not_found",
		}).Warn("todo not found or not owned")
		return ErrTodoNotFound
	}

	recordOperation(operation, "error")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"todo_id": string(todoID),
		"action":  "todo_" + operation + "_failed",
	}).Errorf("%s todo failed: %v", operation, err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
