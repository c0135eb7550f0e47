package models

import (
	"errors"
	"io"
	"testing"
)

func TestAPIError_Wrapping(t *testing.T) {
	err := NewAPIError(ErrCodeConversionFailed, "html conversion failed", io.ErrUnexpectedEOF)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should see the wrapped error")
	}

	var apiErr *APIError
	if !errors.As(error(err), &apiErr) || apiErr.Code != ErrCodeConversionFailed {
		t.Errorf("errors.As failed or wrong code: %+v", apiErr)
	}

	want := "CONVERSION_FAILED: html conversion failed: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAPIError_ToDetail(t *testing.T) {
	d := NewAPIError(ErrCodeInvalidInput, "text is required", nil).ToDetail()
	if d.Code != ErrCodeInvalidInput || d.Message != "text is required" {
		t.Errorf("ToDetail = %+v", d)
	}
}

func TestOptimizeRequest_Defaults(t *testing.T) {
	text := "x"
	r := OptimizeRequest{Text: &text}
	r.Defaults("aggressive")
	if r.Intensity != "aggressive" || r.ContentType != "text" {
		t.Errorf("Defaults = %+v", r)
	}

	r = OptimizeRequest{Text: &text, Intensity: "soft", ContentType: "html"}
	r.Defaults("aggressive")
	if r.Intensity != "soft" || r.ContentType != "html" {
		t.Errorf("Defaults overwrote explicit values: %+v", r)
	}
}
