package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpersSeeThroughWrapping(t *testing.T) {
	base := errors.New("duplicate")
	cases := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"validation", ValidationError{Field: "nama", Msg: "wajib diisi"}, IsValidation},
		{"not found", NotFoundError{Resource: "order"}, IsNotFound},
		{"conflict", ConflictError{Resource: "order", Err: base}, IsConflict},
		{"internal", InternalError{Err: base}, IsInternal},
		{"unrecognized kind", UnrecognizedOrderKindError{Kind: "gift-order"}, IsUnrecognizedOrderKind},
		{"persist failed", PersistFailedError{OrderID: "PKG-1", Err: base}, IsPersistFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("reconcile: %w", tc.err)
			if !tc.is(wrapped) {
				t.Fatalf("expected helper to match wrapped %T", tc.err)
			}
		})
	}
}

func TestPersistFailedUnwrap(t *testing.T) {
	base := errors.New("link insert failed")
	err := PersistFailedError{OrderID: "PKG-9", Err: base}
	if !errors.Is(err, base) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	if err.Error() != "gagal menyimpan order PKG-9: link insert failed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := (ValidationError{Field: "nomorHp", Msg: "wajib diisi"}).Error(); got != "nomorHp: wajib diisi" {
		t.Fatalf("got %q", got)
	}
	if got := (ValidationError{Field: "penginapanId"}).Error(); got != "invalid penginapanId" {
		t.Fatalf("got %q", got)
	}
}

func TestRequestContextUserKey(t *testing.T) {
	if got := (RequestContext{}).UserKey(); got != "" {
		t.Fatalf("anonymous key = %q", got)
	}
	if got := (RequestContext{UserID: 42}).UserKey(); got != "42" {
		t.Fatalf("user key = %q", got)
	}
}
