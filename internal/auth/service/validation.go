package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlibekovAA/todo-api/internal/common/constants"
	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
)

func validateRegisterInput(input RegisterInput) error {
	var missing []string
	if isBlank(input.Username) {
		missing = append(missing, "username")
	}
	if isBlank(input.Email) {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if err := missingFieldsError(missing); err != nil {
		return err
	}
	if len(input.Password) > constants.PasswordMaxBytes {
		return commonerrors.ErrValidation.WithCause(fmt.Errorf("password must be at most %d bytes", constants.PasswordMaxBytes))
	}
	return nil
}

func validateLoginInput(input LoginInput) error {
	var missing []string
	if isBlank(input.Email) {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	return missingFieldsError(missing)
}

func missingFieldsError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return commonerrors.ErrValidation.WithCause(errors.New("missing or invalid fields: " + strings.Join(missing, ", ")))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
