package shell

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/envsync/pkg/types"
)

// FormatExports renders captured variables as shell statements for eval in
// the target shell.
func FormatExports(exports []types.EnvVar, shellType string) string {
	var b strings.Builder
	for _, v := range exports {
		switch shellType {
		case "fish":
			fmt.Fprintf(&b, "set -gx %s %s\n", v.Name, singleQuote(v.Value))
		default: // bash, zsh, sh
			fmt.Fprintf(&b, "export %s=%s\n", v.Name, singleQuote(v.Value))
		}
	}
	return b.String()
}

// InitSnippet returns the startup snippet for the given shell. The snippet
// evals the committed exports on success; on an aborted probe it stops the
// remainder of the startup file without terminating the shell.
func InitSnippet(shellType string) string {
	switch shellType {
	case "fish":
		return `# envsync session variables (guarded two-phase sourcing)
set -l _envsync_vars (envsync source-vars --shell fish | string collect)
if test $status -eq 0
    test -n "$_envsync_vars"; and eval "$_envsync_vars"
end
set -e _envsync_vars
`
	default: // bash, zsh
		return `# envsync session variables (guarded two-phase sourcing)
if _envsync_vars="$(envsync source-vars --shell bash)"; then
    eval "$_envsync_vars"
    unset _envsync_vars
else
    unset _envsync_vars
    # Skip the rest of this startup file; the shell itself stays alive.
    return 0 2>/dev/null || true
fi
`
	}
}

// singleQuote wraps a value for safe single-quoted shell interpolation.
func singleQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
