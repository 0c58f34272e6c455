// Package resolve selects the destination user directory for an activation
// run from the prober's candidate list.
package resolve

import (
	"path/filepath"

	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/probe"
	"github.com/arthur-debert/envsync/pkg/types"
)

// Resolve picks exactly one user directory and derives the target file path
// inside it. Candidates must already be in sorted order; the first entry
// wins. That tie-break is documented behavior, not a heuristic to improve:
// downstream tests pin it.
func Resolve(fsys types.FS, candidates []types.UserCandidate, mountPath, targetName string) (*types.ResolvedDestination, error) {
	logger := logging.GetLogger("resolve")

	if len(candidates) == 0 {
		return nil, errors.New(errors.ErrUserDetectionFailed,
			"no user profile directory found under mount point").
			WithDetail("mountPath", mountPath).
			WithDetail("listing", probe.RawListing(fsys, mountPath))
	}

	chosen := candidates[0]
	userDir := filepath.Join(mountPath, chosen.Name)

	// The listing and this use of it are two separate filesystem reads; the
	// chosen directory can vanish in between. Re-verify and report the race
	// with a dedicated diagnostic instead of a generic I/O error.
	info, err := fsys.Stat(userDir)
	if err != nil || !info.IsDir() {
		resolveErr := errors.Wrapf(err, errors.ErrUserDetectionFailed,
			"selected user directory %s disappeared before use", userDir)
		if resolveErr == nil {
			resolveErr = errors.Newf(errors.ErrUserDetectionFailed,
				"selected user directory %s is no longer a directory", userDir)
		}
		// One diagnostic re-listing; if that fails too, chain both failures
		// so the operator sees the full picture.
		resolveErr = resolveErr.WithDetail("listing", probe.RawListing(fsys, mountPath))
		return nil, resolveErr
	}

	logger.Debug().Str("user", chosen.Name).Str("dir", userDir).Msg("Resolved destination user")

	return &types.ResolvedDestination{
		UserDirectory: userDir,
		TargetFile:    filepath.Join(userDir, targetName),
	}, nil
}
