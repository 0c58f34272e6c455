// Package activate runs the activation pipeline: probe the environment,
// resolve the destination user, synchronize the artifact.
package activate

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/envsync/pkg/cmdexec"
	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/filesystem"
	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/probe"
	"github.com/arthur-debert/envsync/pkg/resolve"
	"github.com/arthur-debert/envsync/pkg/sync"
	"github.com/arthur-debert/envsync/pkg/types"
)

// Options holds the inputs of one activation run.
type Options struct {
	MountPath  string
	SourceFile string
	TargetName string
	DryRun     bool
	Verbose    bool

	// RunPrefix is the orchestrator-supplied dry-run command prefix;
	// empty means real execution.
	RunPrefix string

	// FS, Runner and Out default to the real filesystem, the real command
	// runner and os.Stdout; tests inject fakes.
	FS     types.FS
	Runner cmdexec.Commander
	Out    io.Writer
}

// Activate performs one activation run. A host without the foreign mount is
// a silent, successful skip; every other failure aborts the run with a
// diagnostic. Nothing is persisted between runs: idempotency comes from
// recomputing the destination and overwriting atomically.
func Activate(ctx context.Context, opts Options) (*types.ActivateResult, error) {
	logger := logging.GetLogger("activate")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	runner := opts.Runner
	if runner == nil {
		runner = &cmdexec.RealCommander{}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	result := &types.ActivateResult{DryRun: opts.DryRun}

	mount := probe.Probe(fsys, opts.MountPath)
	if !mount.Exists {
		result.Skipped = true
		logger.Debug().Str("mount", opts.MountPath).Msg("No foreign mount, activation skipped")
		return result, nil
	}
	if !mount.Readable {
		return nil, errors.Newf(errors.ErrPermissionDenied,
			"mount point %s exists but is not readable", opts.MountPath)
	}

	candidates, listWarning := probe.ListUserCandidates(fsys, opts.MountPath)
	if listWarning != "" {
		logger.Warn().
			Str("mount", opts.MountPath).
			Str("error", listWarning).
			Msg("User listing failed after readability check, continuing")
	}
	result.CandidateCount = len(candidates)

	dest, err := resolve.Resolve(fsys, candidates, opts.MountPath, opts.TargetName)
	if err != nil {
		return nil, err
	}
	result.Destination = dest

	syncer := sync.New(fsys, runner, out)
	err = syncer.Sync(ctx, types.SyncRequest{
		SourceFile: opts.SourceFile,
		TargetFile: dest.TargetFile,
		DryRun:     opts.DryRun,
		Verbose:    opts.Verbose,
		RunPrefix:  opts.RunPrefix,
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
