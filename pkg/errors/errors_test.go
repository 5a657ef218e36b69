package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestEditErrorUnknownField(t *testing.T) {
	err := NewUnknownFieldError("LoanAmont")

	if !IsUnknownField(err) {
		t.Error("Expected IsUnknownField to be true")
	}
	if IsTypeMismatch(err) {
		t.Error("Expected IsTypeMismatch to be false")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected edit errors to match ErrInvalidInput")
	}
	if err.Error() == "" {
		t.Error("Expected non-empty error message")
	}
}

func TestEditErrorTypeMismatch(t *testing.T) {
	err := NewTypeMismatchError("RidersPresent", "list-of-structured", "plain text")

	if !IsTypeMismatch(err) {
		t.Error("Expected IsTypeMismatch to be true")
	}
	if IsUnknownField(err) {
		t.Error("Expected IsUnknownField to be false")
	}
	if err.Field != "RidersPresent" {
		t.Errorf("Expected field RidersPresent, got %s", err.Field)
	}
}

func TestEditErrorWrapped(t *testing.T) {
	inner := NewTypeMismatchError("BorrowerNames", "list-of-text", 42)
	wrapped := fmt.Errorf("applying edit: %w", inner)

	if !IsTypeMismatch(wrapped) {
		t.Error("Expected IsTypeMismatch to survive wrapping")
	}

	var editErr *EditError
	if !errors.As(wrapped, &editErr) {
		t.Fatal("Expected errors.As to recover *EditError")
	}
	if editErr.Field != "BorrowerNames" {
		t.Errorf("Expected field BorrowerNames, got %s", editErr.Field)
	}
}

func TestCaptureError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewCaptureError("Document_3", "extraction call failed", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected CaptureError to unwrap to inner error")
	}
	if err.Error() != "capture Document_3 failed: extraction call failed" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapParse("json", "capture.json", nil) != nil {
		t.Error("Expected nil when wrapping nil error")
	}
	if WrapIO("read", "out.json", nil) != nil {
		t.Error("Expected nil when wrapping nil error")
	}

	inner := errors.New("unexpected end of JSON input")
	err := WrapParse("json", "capture.json", inner)
	if !errors.Is(err, inner) {
		t.Error("Expected ParseError to unwrap to inner error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatal("Expected errors.As to recover *ParseError")
	}
	if parseErr.File != "capture.json" {
		t.Errorf("Expected file capture.json, got %s", parseErr.File)
	}
}
