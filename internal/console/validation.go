package console

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the create form accepts.
const MinPasswordLength = 6

// strongPasswordLength is the length that earns a strength point.
const strongPasswordLength = 8

var strengthLabels = [...]string{"Very weak", "Weak", "Medium", "Good", "Strong"}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// PasswordStrength scores password from 0 to 4, one point each for length
// of at least 8, mixed case, a digit, and a non-alphanumeric character.
// The score is informational and never blocks submission.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	if utf8.RuneCountInString(password) >= strongPasswordLength {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if other {
		score++
	}
	return score
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score int) string {
	if score < 0 || score >= len(strengthLabels) {
		return ""
	}
	return strengthLabels[score]
}

// validateNewUser checks the create form without contacting the API.
func validateNewUser(form CreateForm) MessageKey {
	if blank(form.Name) || blank(form.Email) || blank(form.Password) {
		return MsgRequiredFields
	}
	if utf8.RuneCountInString(form.Password) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return MsgNone
}

// validateUserUpdate checks the edit form without contacting the API.
func validateUserUpdate(form EditForm) MessageKey {
	if blank(form.Name) || blank(form.Email) {
		return MsgRequiredFields
	}
	return MsgNone
}
