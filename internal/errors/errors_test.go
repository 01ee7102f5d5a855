package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError(503, "http://localhost:8000/search", "service unavailable")
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Error() = %q, missing status", err.Error())
	}
	if !strings.Contains(err.Error(), "/search") {
		t.Errorf("Error() = %q, missing endpoint", err.Error())
	}

	noStatus := NewAPIError(0, "http://localhost:8000/search", "oops")
	if strings.Contains(noStatus.Error(), "[0]") {
		t.Errorf("Error() = %q, zero status rendered", noStatus.Error())
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("search", "http://localhost:8000/search", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !IsNetworkError(fmt.Errorf("request failed: %w", err)) {
		t.Error("IsNetworkError missed a wrapped NetworkError")
	}
}

func TestParseErrorIsInvalidResponse(t *testing.T) {
	err := NewParseError("missing results array", "results")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError does not match ErrInvalidResponse")
	}
	if !IsParseError(err) {
		t.Error("IsParseError returned false")
	}
}

func TestHelpersOnForeignErrors(t *testing.T) {
	err := errors.New("plain")

	if IsNetworkError(err) || IsAPIError(err) || IsParseError(err) {
		t.Error("type predicates matched a plain error")
	}
	if GetHTTPStatus(err) != 0 {
		t.Error("GetHTTPStatus nonzero for a plain error")
	}
	if GetEndpoint(err) != "" {
		t.Error("GetEndpoint nonempty for a plain error")
	}
}

func TestGetters(t *testing.T) {
	err := NewAPIErrorWithBody(400, "http://localhost:8000/search", "bad request", `{"error":"query must not be empty"}`)

	if GetHTTPStatus(err) != 400 {
		t.Errorf("GetHTTPStatus = %d", GetHTTPStatus(err))
	}
	if GetEndpoint(err) != "http://localhost:8000/search" {
		t.Errorf("GetEndpoint = %q", GetEndpoint(err))
	}
	if GetResponseBody(err) == "" {
		t.Error("GetResponseBody empty")
	}

	netErr := NewNetworkError("search", "http://localhost:8000/search", errors.New("timeout"))
	if GetEndpoint(netErr) != "http://localhost:8000/search" {
		t.Errorf("GetEndpoint on NetworkError = %q", GetEndpoint(netErr))
	}
}
