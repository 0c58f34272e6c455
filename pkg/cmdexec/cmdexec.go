// Package cmdexec abstracts external command execution for testability.
// Production code uses Commander; tests inject a fake that records calls.
package cmdexec

import (
	"context"
	"errors"
	"os/exec"
)

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExitStatus executes an external command and returns its exit status,
	// never propagating a failing command as a panic or process exit. A
	// start failure (e.g. missing binary) is reported via err with
	// status -1.
	ExitStatus(ctx context.Context, name string, args ...string) (int, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ExitStatus executes the command and returns its exit status.
func (c *RealCommander) ExitStatus(ctx context.Context, name string, args ...string) (int, error) {
	err := exec.CommandContext(ctx, name, args...).Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
