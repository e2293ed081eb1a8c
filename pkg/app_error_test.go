package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_ToHTTPError(t *testing.T) {
	t.Run("internal error hides cause and links back", func(t *testing.T) {
		cause := errors.New("soap timeout at http://legacy/ws")
		appErr := NewDomainError("INTERNAL_ERROR", "We could not process your payment", cause, http.StatusInternalServerError)

		body := appErr.ToHTTPError()
		if body.Message != "We could not process your payment" {
			t.Fatalf("unexpected message: %q", body.Message)
		}
		if body.StartURL != StartOverURL {
			t.Fatalf("expected start over link, got %q", body.StartURL)
		}
		if !errors.Is(appErr, cause) {
			t.Fatalf("expected cause to be unwrapped")
		}
	})

	t.Run("validation error keeps details", func(t *testing.T) {
		appErr := NewValidationError([]string{"invalid rut", "invalid email"})
		body := appErr.ToHTTPError()
		if appErr.HTTPStatus != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", appErr.HTTPStatus)
		}
		if len(body.Details) != 2 || body.StartURL != "" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}
