package commonerrors_test

import (
	"errors"
	"fmt"
	"testing"

	commonerrors "github.com/AlibekovAA/todo-api/internal/common/errors"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", commonerrors.ErrDatabaseError.WithCause(errors.New("timeout")))

	if !errors.Is(wrapped, commonerrors.ErrDatabaseError) {
		t.Error("expected copy with cause to match its sentinel")
	}
	if errors.Is(wrapped, commonerrors.ErrInternalError) {
		t.Error("different codes must not match")
	}

	domainErr, ok := commonerrors.AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected domain error")
	}
	if domainErr.Message() != "database operation failed" {
		t.Errorf("unexpected message %q", domainErr.Message())
	}
	if domainErr.Error() != "database operation failed: timeout" {
		t.Errorf("unexpected error string %q", domainErr.Error())
	}
}

func TestAsDomainError_PlainError(t *testing.T) {
	if _, ok := commonerrors.AsDomainError(errors.New("plain")); ok {
		t.Error("plain error is not a domain error")
	}
	if _, ok := commonerrors.AsDomainError(commonerrors.ErrMissingToken); !ok {
		t.Error("sentinel is a domain error")
	}
}
