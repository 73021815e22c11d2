package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fluentko-be/internal/pkg/apperror"
)

// requireText rejects empty and whitespace-only values.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewValidationError(field, "is required")
	}
	return nil
}

// maxText counts characters, not bytes, like the validator's max tag.
func maxText(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperror.NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}
