package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb: throttled")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError).
		WithAction("Retry later")

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}

	body := appErr.ToHTTPError()
	if body.Message != "An internal error occurred" || body.Code != "INTERNAL_ERROR" || body.Action != "Retry later" {
		t.Fatalf("unexpected body: %+v", body)
	}

	simple := NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	if simple.Err != nil || simple.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected simple error: %+v", simple)
	}
	if simple.Error() != "QUOTE_NOT_FOUND: Quote not found" {
		t.Fatalf("unexpected error string: %s", simple.Error())
	}
}
