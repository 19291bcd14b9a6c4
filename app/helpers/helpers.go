package helpers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyIdentity contextKey = "identity"
)

// Identity is what a verified bearer token carries.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(*Identity)
	return identity, ok && identity != nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := toSnake(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number", field)
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on %s", field, err.Tag())
		}
	}
	return errorMessages
}

// FirstValidationMessage picks one message deterministically for the {error} body.
func FirstValidationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "validation failed"
	}
	messages := FormatValidationErrors(errs[:1])
	for _, msg := range messages {
		return msg
	}
	return "validation failed"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func PasswordCompare(hashPass string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPass), password) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// ParseID parses a positive numeric path id.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
