package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/plantpal/internal/care"
	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/storage"
)

// Exit codes returned by the CLI
const (
	ExitFailure  = 1
	ExitCooldown = 2
	ExitNoPlant  = 3
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

// Describe renders err for the terminal, replacing engine errors with a
// friendlier message where one exists
func Describe(err error) string {
	var cooldown *care.CooldownError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &cooldown):
		return fmt.Sprintf("Your plant was just given %s. Try again in %s.", cooldown.Action, cooldown.Remaining.Round(time.Second))
	case stderrors.Is(err, engine.ErrNoPlantFound):
		return "You don't have a plant yet. Run 'plantpal plant create' to plant one."
	case stderrors.Is(err, engine.ErrPlantExists):
		return "You already have a plant. Delete it first with 'plantpal plant delete'."
	case stderrors.Is(err, storage.ErrVersionConflict):
		return "Your plant changed while we were updating it. Please try again."
	}
	return Format(err)
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, care.ErrCooldownActive):
		return ExitCooldown
	case stderrors.Is(err, engine.ErrNoPlantFound):
		return ExitNoPlant
	}
	return ExitFailure
}

// Fatal logs an error and exits the program with its exit code
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Describe(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
