// Package shell implements the guarded two-phase sourcing of the session
// variables script and the shell-startup snippets that hook it in.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/envsync/pkg/cmdexec"
	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/types"
)

// CannedNoOutput replaces an empty or unreadable probe capture so the
// operator is never shown a blank diagnostic.
const CannedNoOutput = "script exited with failure but produced no output"

// probeScript dry-runs the variables script in a subshell. Its stderr goes
// to the capture file; a failure inside the script stays inside the
// subshell and can never take down the caller.
const probeScript = `set -a; . "$1" >/dev/null 2>"$2"`

// captureScript re-executes the script after a clean probe and prints the
// resulting environment for diffing. NUL delimiters keep variables with
// newlines in their values intact.
const captureScript = `set -a; . "$1" >/dev/null 2>&1; env -0`

// SourceVars runs the two-phase wrapper: Initial -> Probing -> (Committed |
// Aborted).
//
// An absent script commits silently: the shell must start normally whether
// or not session variables are configured. A present script is probed in a
// throwaway subshell first; only a clean probe is allowed to contribute
// exports. A failed probe yields an Aborted report carrying the captured
// stderr. Aborted is a returned value, never a process exit: the caller
// decides to skip its remaining startup customizations while the session
// itself stays usable.
func SourceVars(ctx context.Context, runner cmdexec.Commander, fsys types.FS, scriptPath string) (*types.SourceReport, error) {
	logger := logging.GetLogger("shell")

	if _, err := fsys.Stat(scriptPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("script", scriptPath).Msg("No session variables script, nothing to source")
			return &types.SourceReport{State: types.SourceCommitted}, nil
		}
		return nil, fmt.Errorf("failed to check session variables script: %w", err)
	}

	capture, err := os.CreateTemp("", "envsync-vars-*.stderr")
	if err != nil {
		return nil, fmt.Errorf("failed to create probe capture file: %w", err)
	}
	capturePath := capture.Name()
	_ = capture.Close()
	defer func() { _ = os.Remove(capturePath) }()

	status, err := runner.ExitStatus(ctx, "sh", "-c", probeScript, "sh", scriptPath, capturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe session variables script: %w", err)
	}

	if status != 0 {
		captured := readCapture(capturePath)
		logger.Warn().
			Str("script", scriptPath).
			Int("status", status).
			Msg("Session variables script failed its probe")
		return &types.SourceReport{
			State:       types.SourceAborted,
			ScriptFound: true,
			Warning:     abortWarning(scriptPath, status, captured),
		}, nil
	}

	exports, err := captureExports(ctx, runner, scriptPath)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("script", scriptPath).
		Int("exports", len(exports)).
		Msg("Session variables script committed")

	return &types.SourceReport{
		State:       types.SourceCommitted,
		ScriptFound: true,
		Exports:     exports,
	}, nil
}

// captureExports re-runs the already-proven script and diffs the resulting
// environment against the current process environment. Only added or
// changed variables are reported; nothing is ever removed.
func captureExports(ctx context.Context, runner cmdexec.Commander, scriptPath string) ([]types.EnvVar, error) {
	output, err := runner.Run(ctx, "sh", "-c", captureScript, "sh", scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to capture session variables: %w", err)
	}

	before := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			before[name] = value
		}
	}

	var exports []types.EnvVar
	for _, entry := range strings.Split(string(output), "\x00") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		if isEnvNoise(name) {
			continue
		}
		if prev, existed := before[name]; existed && prev == value {
			continue
		}
		exports = append(exports, types.EnvVar{Name: name, Value: value})
	}
	return exports, nil
}

// isEnvNoise filters variables the subshell itself churns.
func isEnvNoise(name string) bool {
	switch name {
	case "_", "SHLVL", "PWD", "OLDPWD":
		return true
	}
	return false
}

func readCapture(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return CannedNoOutput
	}
	return strings.TrimSpace(string(data))
}

func abortWarning(scriptPath string, status int, captured string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "session variables script %s exited with status %d:\n", scriptPath, status)
	for _, line := range strings.Split(captured, "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	b.WriteString("session variables were not applied; this may affect timezone-dependent commands\n")
	b.WriteString("aborting remaining startup customizations (the shell itself stays usable)")
	return b.String()
}
