package types

// SourceState is the terminal state of one sourcing-wrapper run.
type SourceState string

const (
	// SourceCommitted means the variables script was either absent (silent
	// no-op) or probed clean, and its exports are safe to apply.
	SourceCommitted SourceState = "committed"

	// SourceAborted means the probe failed and the remaining startup
	// customizations should be skipped. The shell session itself stays
	// usable; Aborted is a returned value, never a process exit from
	// library code.
	SourceAborted SourceState = "aborted"
)

// SourceReport is the outcome of the two-phase sourcing wrapper.
type SourceReport struct {
	State SourceState

	// ScriptFound distinguishes a clean probe from the absent-script
	// no-op, which must produce no output at all.
	ScriptFound bool

	// Exports holds variables the script added or changed, in the order
	// the environment listed them. Pre-existing variables are never
	// removed or replaced with empty values by the wrapper itself.
	Exports []EnvVar

	// Warning is the structured diagnostic for the Aborted state,
	// including the captured stderr of the failed probe.
	Warning string
}

// EnvVar is one NAME=VALUE pair captured from a probed script.
type EnvVar struct {
	Name  string
	Value string
}
