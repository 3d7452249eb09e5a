package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
)

var ErrTodoNotFound = commonerrors.NewDomainError(
	"TODO_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusNotFound,
	"todo not found or not authorized",
)
