package authutil

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword_Valid(t *testing.T) {
	for _, pw := range []string{"secure123", "MyP@ssw0rd", "abcdef1", strings.Repeat("a", 128)} {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("expected %q to be valid, got %v", pw, err)
		}
	}
}

func TestValidatePassword_TooShort(t *testing.T) {
	for _, pw := range []string{"", "a", "abcde"} {
		if err := ValidatePassword(pw); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort for %q, got %v", pw, err)
		}
	}
}

func TestValidatePassword_TooLong(t *testing.T) {
	if err := ValidatePassword(strings.Repeat("a", 129)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestValidatePassword_Common(t *testing.T) {
	for _, pw := range []string{"password", "Password", "QWERTY", "iloveyou"} {
		if err := ValidatePassword(pw); !errors.Is(err, ErrPasswordCommon) {
			t.Errorf("expected ErrPasswordCommon for %q, got %v", pw, err)
		}
	}
}
