package repositories

import (
	"errors"
	"strings"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"gorm.io/gorm"
)

// constraintRule names a storage constraint and the fragments that identify it in
// postgres and sqlite error messages.
type constraintRule struct {
	name    string
	markers []string
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "violates check constraint") ||
		strings.Contains(msg, "SQLSTATE 23514")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "SQLSTATE 23503")
}

func violates(err error, rule constraintRule) bool {
	msg := err.Error()
	for _, m := range rule.markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// translateError turns a constraint failure into a ConstraintViolation naming the
// matching rule. Other errors are returned unchanged.
func translateError(err error, rules ...constraintRule) error {
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) && !isCheckViolation(err) && !isForeignKeyViolation(err) {
		return err
	}
	for _, rule := range rules {
		if violates(err, rule) {
			return apperrors.ConstraintViolation(rule.name, err)
		}
	}
	switch {
	case isUniqueViolation(err):
		return apperrors.ConstraintViolation("unique", err)
	case isCheckViolation(err):
		return apperrors.ConstraintViolation("check", err)
	default:
		return apperrors.ConstraintViolation("foreign_key", err)
	}
}
