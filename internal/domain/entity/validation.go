package entity

import "strings"

// RequireField returns a ValidationError when value is empty after trimming.
func RequireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
