package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFrom(t *testing.T) {
	orig := NotFound("Product ID: %d not found", 7)

	if got := From(orig); got != orig {
		t.Errorf("From must return the typed error unchanged, got %+v", got)
	}
	if got := From(fmt.Errorf("wrapped: %w", orig)); got != orig {
		t.Errorf("From must unwrap, got %+v", got)
	}

	got := From(errors.New("pq: connection refused"))
	if got.Code != http.StatusInternalServerError {
		t.Errorf("untyped errors must map to 500, got %d", got.Code)
	}
	if got.Message != "internal server error" {
		t.Errorf("backend detail must not leak, got %q", got.Message)
	}
}

func TestCodePredicates(t *testing.T) {
	if !IsNotFound(NotFound("gone")) {
		t.Error("IsNotFound must match a 404 error")
	}
	if IsNotFound(BadRequest("bad")) {
		t.Error("IsNotFound must not match a 400 error")
	}
	if !IsBadRequest(fmt.Errorf("validate: %w", BadRequest("bad"))) {
		t.Error("IsBadRequest must see through wrapping")
	}
	if IsBadRequest(errors.New("plain")) {
		t.Error("IsBadRequest must not match untyped errors")
	}
}

func TestMethodNotAllowedMessage(t *testing.T) {
	e := MethodNotAllowed(http.MethodPatch)
	if e.Code != http.StatusMethodNotAllowed {
		t.Errorf("unexpected code %d", e.Code)
	}
	if e.Message != "Method 'PATCH' not allowed" {
		t.Errorf("unexpected message %q", e.Message)
	}
}
