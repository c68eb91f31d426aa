package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternal      = errors.New("catalog error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
	ErrBusy          = errors.New("another run is in progress")
)

// Exit codes returned by the CLI.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitInputError = 2
	ExitBusy       = 3
)

// Wrap builds an error message that includes step context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a build error to the process exit status. Problems the user
// can fix in their inputs or config exit 2; a held run lock exits 3.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrBusy):
		return ExitBusy
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return ExitInputError
	default:
		return ExitFailure
	}
}

// Hint returns a short operator-facing suggestion for err, or "" when there
// is nothing more useful to say than the error itself.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "wait for the other run to finish or remove a stale lock file"
	case errors.Is(err, ErrConfiguration):
		return "check the config file with `tunesets config show`"
	case errors.Is(err, ErrNotFound):
		return "check paths.data_dir and the file names under [paths] and [[overrides]]"
	case errors.Is(err, ErrValidation):
		return "fix the reported line in the input file"
	case errors.Is(err, ErrExternal), errors.Is(err, ErrTimeout):
		return "the catalog site may be unreachable; retry later or keep the cache enabled"
	default:
		return ""
	}
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
