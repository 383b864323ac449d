package handler

import (
	"errors"
	"testing"
)

func TestRequestValidator_Passes(t *testing.T) {
	v := NewRequestValidator()

	req := RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestValidator_CollectsFieldErrors(t *testing.T) {
	v := NewRequestValidator()

	req := RegisterRequest{Name: "A", Email: "not-an-email", Password: "123"}
	err := v.Validate(&req)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(ve.Fields), ve.Fields)
	}

	byField := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		byField[f.Field] = f.Message
	}
	if byField["email"] != "email must be a valid email address" {
		t.Fatalf("unexpected email message: %q", byField["email"])
	}
	if byField["password"] != "password must be at least 6 characters" {
		t.Fatalf("unexpected password message: %q", byField["password"])
	}
	if byField["name"] != "name must be at least 2 characters" {
		t.Fatalf("unexpected name message: %q", byField["name"])
	}
}

func TestRequestValidator_TitleTooLong(t *testing.T) {
	v := NewRequestValidator()

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	req := CreateTaskRequest{Title: string(long)}

	var ve *ValidationError
	if err := v.Validate(&req); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
