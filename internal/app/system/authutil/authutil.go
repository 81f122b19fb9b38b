// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	ErrPasswordCommon   = errors.New("password is too common, choose something less guessable")
)

// commonPasswords is a small blocklist of the passwords that show up in
// every breach corpus. Checked case-insensitively.
var commonPasswords = map[string]struct{}{
	"123456":   {},
	"password": {},
	"qwerty":   {},
	"abc123":   {},
	"iloveyou": {},
	"letmein":  {},
	"football": {},
	"welcome":  {},
}

// ValidatePassword enforces the signup password policy.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if _, ok := commonPasswords[strings.ToLower(pw)]; ok {
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules returns a human-readable statement of the policy for
// signup error messages.
func PasswordRules() string {
	return fmt.Sprintf("Passwords must be %d-%d characters.", MinPasswordLength, MaxPasswordLength)
}
