package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitboard/internal/logger"
)

// Error kinds shared by the engine, the service and the stores. Callers wrap
// them with fmt.Errorf("...: %w", Err...) and test with errors.Is.
var (
	// ErrInvalidDate is returned for a malformed year, month or day.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownHabit is returned when a command references a habit the caller does not own.
	ErrUnknownHabit = errors.New("habit not found")
	// ErrNotFound is returned when a user, friend code or habit lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when input fields fail validation.
	ErrValidation = errors.New("validation failed")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
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
