package vfs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundMatchesWrappedIoError(t *testing.T) {
	err := fmt.Errorf("insert failed: %w", NewIoError(KindNotFound, "/a", errors.New("gone")))
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true for a wrapped KindNotFound IoError")
	}
	if IsPermission(err) {
		t.Error("IsPermission() = true, want false for a KindNotFound IoError")
	}
}

func TestIsPermissionMatchesWrappedIoError(t *testing.T) {
	err := NewIoError(KindPermission, "/a", errors.New("denied"))
	if !IsPermission(err) {
		t.Error("IsPermission() = false, want true for a KindPermission IoError")
	}
}

func TestIsNotFoundFalseForUnrelatedError(t *testing.T) {
	if IsNotFound(errors.New("something else")) {
		t.Error("IsNotFound() = true, want false for a plain error")
	}
}

func TestIoErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	outer := NewIoError(KindOther, "/a", inner)
	if !errors.Is(outer, inner) {
		t.Error("errors.Is(outer, inner) = false, want true")
	}
}
