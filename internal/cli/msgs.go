package cli

import "errors"

// ErrSourcingAborted signals a failed variables probe to main without a
// second diagnostic line; the structured warning is already on stderr.
var ErrSourcingAborted = errors.New("session variables probe failed")

// Message constants
const (
	MsgActivateShort = "Synchronize the generated artifact into the Windows user profile"
	MsgActivateLong  = `The 'activate' command probes for the Windows users mount, detects the
active user profile directory and copies the generated configuration
artifact into it with an atomic replace.

On hosts without the mount (not running under WSL) the command is a
silent no-op and exits zero. Every failure aborts the run with a
diagnostic and a remediation hint; no partial state is left behind.`

	MsgActivateExample = `  # Activate using the configured paths
  envsync activate

  # Preview without writing, echoing the copy that would run
  envsync activate --dry-run --run-prefix echo

  # Override the artifact for one run
  envsync activate --source ./build/wezterm.lua`

	MsgSourceVarsShort = "Probe and emit the session variables script for shell startup"
	MsgSourceVarsLong  = `The 'source-vars' command implements the guarded two-phase sourcing used
during interactive shell startup. The variables script is first executed
in a throwaway subshell with its errors captured; only if that probe
succeeds are the resulting exports printed on stdout for the caller to
eval. A missing script is a silent no-op.

On a failed probe a structured warning is printed on stderr and the
command exits nonzero so the startup snippet can skip the remaining
customizations without closing the shell.`

	MsgSourceVarsExample = `  # As wired by 'envsync snippet' in ~/.bashrc
  eval "$(envsync source-vars --shell bash)"

  # Probe an explicit script
  envsync source-vars ~/.config/envsync/session-vars.sh`

	MsgSnippetShort = "Print the shell startup snippet"
	MsgSnippetLong  = `Print the snippet that hooks the guarded session variable sourcing into
an interactive shell's startup file.`

	MsgSnippetExample = `  # Append to your shell startup
  envsync snippet --shell bash >> ~/.bashrc
  envsync snippet --shell fish >> ~/.config/fish/config.fish`

	MsgGenConfigShort = "Output or write the default configuration"
	MsgGenConfigLong  = `Print the commented default configuration, or write it to the user
config path with --write. An existing file is never overwritten.`

	MsgGenConfigExample = `  # Inspect the defaults
  envsync genconfig

  # Create ~/.config/envsync/envsync.toml
  envsync genconfig --write`
)
