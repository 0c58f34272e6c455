// Package probe detects the surrounding host environment: whether the
// foreign-OS namespace (the Windows drive under WSL) is mounted, and which
// user profile directories it exposes.
package probe

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/types"
)

// denylist holds the known non-user entries under the users mount point.
// Comparison is exact and case-sensitive; downstream behavior is pinned on
// this exact set.
var denylist = map[string]struct{}{
	"Public":       {},
	"Default":      {},
	"Default User": {},
	"All Users":    {},
	"desktop.ini":  {},
}

// Probe checks the mount point and reports whether it exists and is
// readable. A missing mount point is the normal not-under-WSL signal and is
// not an error; an existing but unreadable one is a misconfiguration the
// caller must surface as a hard failure.
func Probe(fsys types.FS, mountPath string) types.MountProbe {
	logger := logging.GetLogger("probe")

	result := types.MountProbe{MountPath: mountPath}

	if _, err := fsys.Stat(mountPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", mountPath).Msg("Mount point not present, skipping")
			return result
		}
		// The path is there but stat failed (usually EACCES on a parent).
		result.Exists = true
		logger.Debug().Err(err).Str("path", mountPath).Msg("Mount point stat failed")
		return result
	}

	result.Exists = true

	if _, err := fsys.ReadDir(mountPath); err != nil {
		logger.Debug().Err(err).Str("path", mountPath).Msg("Mount point is not listable")
		return result
	}

	result.Readable = true
	return result
}

// ListUserCandidates lists the directories under the mount point, applies
// the denylist filter and returns the survivors in lexicographic order.
//
// A listing failure after a passed readability check is a narrow race
// window: instead of failing the run, it returns an empty list plus the raw
// error string so the caller can emit a non-fatal warning and continue.
func ListUserCandidates(fsys types.FS, mountPath string) ([]types.UserCandidate, string) {
	entries, err := fsys.ReadDir(mountPath)
	if err != nil {
		return nil, err.Error()
	}

	var candidates []types.UserCandidate
	for _, entry := range entries {
		if _, denied := denylist[entry.Name()]; denied {
			continue
		}
		if !entry.IsDir() {
			continue
		}
		candidates = append(candidates, types.UserCandidate{Name: entry.Name()})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return candidates, ""
}

// RawListing returns the unfiltered entry names under the mount point for
// operator diagnostics. Errors are folded into the listing itself so the
// result is always printable.
func RawListing(fsys types.FS, mountPath string) []string {
	entries, err := fsys.ReadDir(mountPath)
	if err != nil {
		return []string{"<listing failed: " + err.Error() + ">"}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
