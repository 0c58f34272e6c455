package types

// MountProbe is the result of checking the foreign-namespace mount point.
// It is recomputed on every activation run and never persisted.
type MountProbe struct {
	// MountPath is the location that was probed, e.g. /mnt/c/Users.
	MountPath string

	// Exists reports whether the mount point is present at all. A missing
	// mount point is the normal signal that the host is not running under
	// WSL and must be treated as a silent, successful skip.
	Exists bool

	// Readable reports whether the mount point could be listed. An
	// existing but unreadable mount is a misconfiguration, not an absent
	// feature, and callers must treat it as a hard error.
	Readable bool
}

// UserCandidate is a single directory entry under the mount point that
// survived the denylist filter.
type UserCandidate struct {
	Name string
}

// ResolvedDestination is the selected user profile directory and the full
// path of the file to synchronize into it.
type ResolvedDestination struct {
	UserDirectory string
	TargetFile    string
}

// SyncRequest describes one synchronization of a generated artifact to its
// resolved destination.
type SyncRequest struct {
	SourceFile string
	TargetFile string

	// DryRun performs all validation but substitutes a preview action for
	// the actual write.
	DryRun bool

	// Verbose enables the per-file detail line on successful copies.
	Verbose bool

	// RunPrefix is the caller-provided command prefix executed in dry-run
	// mode in place of the copy (empty means no preview command is run).
	RunPrefix string
}

// ActivateResult summarizes one activation run.
type ActivateResult struct {
	// Skipped is true when the mount point does not exist and the run was
	// a silent no-op.
	Skipped bool

	DryRun         bool
	CandidateCount int
	Destination    *ResolvedDestination
}
