package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFatalIO marks failures of the streams themselves: an unreadable
	// input, a failed write, or a line too long to scan. These abort the
	// run; everything committed before the failure remains on disk.
	ErrFatalIO = errors.New("fatal I/O error")

	// ErrEncoding marks input that cannot be decoded under the configured
	// encoding at the stream level. Per-line decode problems are not
	// errors; they quarantine the line and the run continues.
	ErrEncoding = errors.New("encoding error")

	// ErrValidation marks unusable engine options.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes pipeline context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFatalIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Interrupted reports whether a run error came from cancellation rather
// than a failure, so callers can record the run as interrupted and still
// exit cleanly.
func Interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "repair failure"
	}
	return strings.Join(parts, ": ")
}
