package services

import (
	"unicode/utf8"

	"trippilot/skyview/internal/models/dtos"
)

const (
	PasswordWeak   = "weak"
	PasswordMedium = "medium"
	PasswordStrong = "strong"
)

// EvaluatePassword scores password from 0 to 5, one point per satisfied
// check.
func EvaluatePassword(password string) dtos.PasswordStrengthResponse {
	checks := dtos.PasswordChecks{Length: utf8.RuneCountInString(password) >= 8}
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			checks.Lowercase = true
		case r >= 'A' && r <= 'Z':
			checks.Uppercase = true
		case r >= '0' && r <= '9':
			checks.Number = true
		default:
			checks.Special = true
		}
	}

	score := 0
	for _, ok := range []bool{checks.Length, checks.Lowercase, checks.Uppercase, checks.Number, checks.Special} {
		if ok {
			score++
		}
	}

	level := PasswordWeak
	switch {
	case score >= 4:
		level = PasswordStrong
	case score >= 3:
		level = PasswordMedium
	}

	return dtos.PasswordStrengthResponse{Score: score, Level: level, Checks: checks}
}
