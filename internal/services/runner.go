package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResult captures the outcome of one external tool invocation.
type CommandResult struct {
	// Output holds combined stdout and stderr, trimmed.
	Output string
	// ExitCode is the process exit status; -1 when the process never ran
	// or was killed by a signal.
	ExitCode int
}

// Runner executes external commands. The interface exists so pipeline code
// can be tested without spawning processes.
type Runner interface {
	Run(ctx context.Context, binary string, args ...string) (CommandResult, error)
}

// NewRunner returns the os/exec backed Runner used outside of tests.
func NewRunner() Runner {
	return commandRunner{}
}

type commandRunner struct{}

func (commandRunner) Run(ctx context.Context, binary string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	result := CommandResult{Output: strings.TrimSpace(string(output)), ExitCode: -1}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("%w: %s exited %d", ErrExternalTool, binary, result.ExitCode)
		}
		return result, fmt.Errorf("%w: run %s: %w", ErrExternalTool, binary, err)
	}
	return result, nil
}

// Indent prefixes every line of captured tool output so it reads as a block
// beneath the operator-facing error message.
func Indent(output string) string {
	if output == "" {
		return ""
	}
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = "   " + line
	}
	return strings.Join(lines, "\n")
}
