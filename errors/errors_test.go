package errors

import (
	"fmt"
	"testing"
)

func TestEaselError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeItemNotVisible, "item not visible")
	if err.Code != ErrCodeItemNotVisible {
		t.Errorf("expected code %s, got %s", ErrCodeItemNotVisible, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeRequestFailed, "request failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeRequestFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeItemNotVisible) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("id", "abc").WithDetail("count", 3)
	if detailed.Details["id"] != "abc" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test FileTooLarge
	err := FileTooLarge("notes.json", 2048, 1024)
	if err.Code != ErrCodeFileTooLarge {
		t.Errorf("expected code %s, got %s", ErrCodeFileTooLarge, err.Code)
	}
	if err.Details["size"] != int64(2048) {
		t.Error("FileTooLarge should include size detail")
	}

	// Test BadStatus
	err = BadStatus("GET", "http://localhost:8188/models", 502)
	if err.Code != ErrCodeBadStatus {
		t.Errorf("expected code %s, got %s", ErrCodeBadStatus, err.Code)
	}
	if err.Details["status"] != 502 {
		t.Error("BadStatus should include status detail")
	}

	// Test ItemNotVisible
	err = ItemNotVisible("x1")
	if err.Details["id"] != "x1" {
		t.Error("ItemNotVisible should include id detail")
	}
}
