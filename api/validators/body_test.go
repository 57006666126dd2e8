package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"min=1"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email": "a@b.com", "count": 2}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.Email != "a@b.com" || payload.Count != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email": "a@b.com", "count": 1, "extra": true}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err == nil {
		t.Fatalf("unknown fields should be rejected")
	}
}

func TestDecodeJSONBodyValidationDetailsUseJSONNames(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email": "not-an-email", "count": 0}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %+v", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email detail %q", details["email"])
	}
	if details["count"] != "must be at least 1" {
		t.Fatalf("unexpected count detail %q", details["count"])
	}
}
