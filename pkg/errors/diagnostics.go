package errors

// Diagnostic maps an error code to its process exit status and the
// remediation text shown to the operator. The table is constructed once at
// process start and never mutated.
type Diagnostic struct {
	ExitCode    int
	Remediation string
}

var diagnostics = map[ErrorCode]Diagnostic{
	ErrNotApplicable: {
		ExitCode:    0,
		Remediation: "", // not an error: the host has no foreign mount
	},
	ErrPermissionDenied: {
		ExitCode: 2,
		Remediation: "The mount point exists but cannot be read. Check the " +
			"mount options (e.g. /etc/wsl.conf automount settings) and the " +
			"permissions of the mounted drive.",
	},
	ErrUserDetectionFailed: {
		ExitCode: 3,
		Remediation: "No usable user profile directory was found under the " +
			"mount point. The raw directory listing is included above; " +
			"verify the Windows user profile is visible from this session.",
	},
	ErrSourceMissing: {
		ExitCode: 4,
		Remediation: "The generated artifact does not exist at the expected " +
			"path. Artifact generation may have failed; re-run the " +
			"generation step before activating.",
	},
	ErrSourceEmpty: {
		ExitCode: 5,
		Remediation: "The generated artifact exists but is empty. Deploying " +
			"it would publish a broken configuration; inspect the " +
			"generation step that produced it.",
	},
	ErrCopyFailed: {
		ExitCode: 6,
		Remediation: "The copy into the destination failed. The underlying " +
			"OS error is preserved above; check destination permissions " +
			"and free space.",
	},
	ErrConfigLoad:  {ExitCode: 1, Remediation: "The configuration file could not be read."},
	ErrConfigParse: {ExitCode: 1, Remediation: "The configuration file is not valid TOML."},
}

// ExitCode maps an error to the process exit status the orchestrator
// observes. nil and NOT_APPLICABLE map to 0; unknown errors map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if d, ok := diagnostics[GetErrorCode(err)]; ok {
		return d.ExitCode
	}
	return 1
}

// Remediation returns the operator-facing remediation text for a code, or
// the empty string when none is registered.
func Remediation(code ErrorCode) string {
	return diagnostics[code].Remediation
}
