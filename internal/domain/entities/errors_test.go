package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tasksystem/core/internal/domain/entities"
)

func TestDomainError_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected entities.ErrKind
	}{
		{"not found", entities.NotFoundf("Can't find task by id: %d", 42), entities.KindNotFound},
		{"business", entities.Businessf("Date incorrect please entry valid date"), entities.KindBusiness},
		{"conflict", entities.Conflictf("user with email %s already exists", "a@b.c"), entities.KindConflict},
		{"unauthorized", entities.Unauthorizedf("invalid credentials"), entities.KindUnauthorized},
	}

	for _, tt := range tests {
		if kind := entities.KindOf(tt.err); kind != tt.expected {
			t.Errorf("%s: KindOf = %v, expected %v", tt.name, kind, tt.expected)
		}
		if !entities.IsKind(tt.err, tt.expected) {
			t.Errorf("%s: IsKind returned false", tt.name)
		}
	}
}

func TestDomainError_MessageFormatting(t *testing.T) {
	err := entities.NotFoundf("Can't find project by id: %d", 7)
	if err.Error() != "Can't find project by id: 7" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestDomainError_WrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("token expired")
	err := entities.Unauthorizedf("invalid token").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped cause to be reachable through errors.Is")
	}
	if !entities.IsKind(err, entities.KindUnauthorized) {
		t.Error("Expected unauthorized kind after wrapping")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if kind := entities.KindOf(fmt.Errorf("boom")); kind != entities.KindUnknown {
		t.Errorf("Expected KindUnknown for plain error, got %v", kind)
	}
}

func TestKindOf_WrappedDomainError(t *testing.T) {
	inner := entities.NotFoundf("Can't find label by id: %d", 3)
	wrapped := fmt.Errorf("loading label: %w", inner)

	if kind := entities.KindOf(wrapped); kind != entities.KindNotFound {
		t.Errorf("Expected KindNotFound through wrapping, got %v", kind)
	}
}
