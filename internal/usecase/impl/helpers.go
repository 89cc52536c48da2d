package impl

import (
	"strings"

	domainerrors "taskboard/internal/domain/errors"

	"github.com/pkg/errors"
)

// isBlank reports whether any value is empty after trimming whitespace.
func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}

	return false
}

// asInternal keeps an existing AppError classification and otherwise marks err as an internal failure.
func asInternal(err error, message string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return errors.Wrap(err, message)
	}

	return errors.Wrapf(domainerrors.ErrInternal, "%s: %v", message, err)
}
