package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSchemeNotFound = errors.New("scheme not found")
	ErrImportNotFound = errors.New("import job not found")
	ErrDuplicateName  = errors.New("scheme name already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTemporary      = errors.New("temporary failure")
	ErrUnavailable    = errors.New("upstream unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

func errFieldRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errFieldInvalid(field string) error {
	return fmt.Errorf("%s must be a non-negative finite number", field)
}
