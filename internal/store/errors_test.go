package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestEntityErrorsWrapGenericSentinels(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrTaskNotFound, ErrNotFound) {
		t.Error("ErrTaskNotFound should wrap ErrNotFound")
	}
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Error("ErrUserNotFound should wrap ErrNotFound")
	}
	if !errors.Is(ErrEmailExists, ErrDuplicate) {
		t.Error("ErrEmailExists should wrap ErrDuplicate")
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want bool
	}{
		{ErrNotFound, true},
		{ErrTaskNotFound, true},
		{ErrUserNotFound, true},
		{fmt.Errorf("lookup failed: %w", ErrTaskNotFound), true},
		{ErrDuplicate, false},
		{ErrUnavailable, false},
		{errors.New("something else"), false},
		{nil, false},
	}

	for _, tc := range cases {
		if got := IsNotFoundError(tc.err); got != tc.want {
			t.Errorf("IsNotFoundError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	if !IsDuplicateError(ErrEmailExists) {
		t.Error("ErrEmailExists should be a duplicate error")
	}
	if IsDuplicateError(ErrTaskNotFound) {
		t.Error("ErrTaskNotFound should not be a duplicate error")
	}
}
