package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidManifest, "pair %d must have two elements", 3)

	if err.Code != ErrCodeInvalidManifest {
		t.Errorf("Code = %v, want INVALID_MANIFEST", err.Code)
	}
	if err.Message != "pair 3 must have two elements" {
		t.Errorf("Message = %q, formatting not applied", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}

	want := "INVALID_MANIFEST: pair 3 must have two elements"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open %s", "modules.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, cause not included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidOrder, "bad order")

	if !Is(err, ErrCodeInvalidOrder) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a plain error")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("Is should not match nil")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	// When structured errors nest, the outermost code wins.
	inner := New(ErrCodeInvalidManifest, "bad declaration")
	outer := Wrap(ErrCodeInvalidInput, inner, "load input")

	if GetCode(outer) != ErrCodeInvalidInput {
		t.Errorf("GetCode = %v, want the outermost code", GetCode(outer))
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "nope")); got != ErrCodeUnsupported {
		t.Errorf("GetCode = %v, want UNSUPPORTED", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported format")
	if got := UserMessage(err); got != "unsupported format" {
		t.Errorf("UserMessage = %q, code prefix should be stripped", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidateModuleName(t *testing.T) {
	valid := []string{"config", "go_env_setup", "api-v2", "db.primary", "模块"}
	for _, name := range valid {
		if err := ValidateModuleName(name); err != nil {
			t.Errorf("ValidateModuleName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		" config",
		"config ",
		"con\tfig",
		"con\x00fig",
		strings.Repeat("a", 257),
	}
	for _, name := range invalid {
		err := ValidateModuleName(name)
		if err == nil {
			t.Errorf("ValidateModuleName(%q) = nil, want error", name)
			continue
		}
		if GetCode(err) != ErrCodeInvalidModule {
			t.Errorf("ValidateModuleName(%q) code = %v, want INVALID_MODULE", name, GetCode(err))
		}
	}
}
