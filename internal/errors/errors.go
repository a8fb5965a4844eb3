package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/keyring"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/pomodoro"
	"github.com/julianstephens/focusflow/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{calendar.ErrInvalidDate, "dates are written as YYYY-MM-DD, e.g. 2026-03-14"},
	{storage.ErrNotFound, "run the matching list command to see valid IDs"},
	{storage.ErrNotInitialized, "run 'focusflow init' first"},
	{storage.ErrCorrupt, "inspect it with 'focusflow debug dump <key>', then repair it or run 'focusflow backup restore'"},
	{pomodoro.ErrLocked, "finish or quit the other timer, or delete its lockfile if it crashed"},
	{keyring.ErrNotFound, "store a connection string with 'focusflow keyring set'"},
}

// Hint returns a short suggestion for well-known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix, followed
// by a hint line when one is known.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
