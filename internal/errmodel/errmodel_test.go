package errmodel

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthorized(), http.StatusUnauthorized},
		{Forbidden(), http.StatusForbidden},
		{Validation("Title is required"), http.StatusBadRequest},
		{NotFound("Event not found"), http.StatusNotFound},
		{Upstream("Upload failed", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("Image not found")), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v)=%d want %d", tc.err, got, tc.want)
		}
	}
}

func TestFromKeepsMessagePrivate(t *testing.T) {
	e := From(errors.New("pq: relation does not exist"))
	if e.Kind != KindUnexpected {
		t.Fatalf("kind=%s want %s", e.Kind, KindUnexpected)
	}
	if e.Message != "Internal server error" {
		t.Fatalf("message leaked internals: %q", e.Message)
	}
	if !Is(fmt.Errorf("x: %w", Forbidden()), KindForbidden) {
		t.Fatalf("Is should see through wrapping")
	}
}
