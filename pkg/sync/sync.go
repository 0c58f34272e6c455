// Package sync copies the generated artifact to its resolved destination
// with an atomic replace, or previews the copy in dry-run mode.
package sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/envsync/pkg/cmdexec"
	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/types"
)

// Syncer performs single-file synchronization runs.
type Syncer struct {
	fs     types.FS
	runner cmdexec.Commander
	out    io.Writer
	logger zerolog.Logger
}

// New creates a Syncer. out receives the informational status lines; pass
// os.Stdout in production.
func New(fsys types.FS, runner cmdexec.Commander, out io.Writer) *Syncer {
	return &Syncer{
		fs:     fsys,
		runner: runner,
		out:    out,
		logger: logging.GetLogger("sync"),
	}
}

// Sync validates the request and then either performs the copy or, in
// dry-run mode, substitutes the caller-supplied preview action. Validation
// short-circuits on the first failure. The source file is never modified.
func (s *Syncer) Sync(ctx context.Context, req types.SyncRequest) error {
	info, err := s.fs.Stat(req.SourceFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceMissing,
			"generated artifact not found at %s", req.SourceFile).
			WithDetail("expectedPath", req.SourceFile)
	}

	if info.Size() == 0 {
		return errors.Newf(errors.ErrSourceEmpty,
			"generated artifact at %s is empty", req.SourceFile)
	}

	if req.DryRun {
		return s.preview(ctx, req)
	}
	return s.copy(req)
}

// preview runs every validation the real copy would, substitutes the
// caller's prefix command for the write, and leaves the filesystem
// untouched.
func (s *Syncer) preview(ctx context.Context, req types.SyncRequest) error {
	if _, err := s.fs.ReadFile(req.SourceFile); err != nil {
		return errors.Wrapf(err, errors.ErrSourceMissing,
			"generated artifact at %s is not readable", req.SourceFile)
	}

	if err := s.checkDestWritable(req.TargetFile); err != nil {
		return err
	}

	if req.RunPrefix != "" {
		args := previewArgs(req)
		output, err := s.runner.Run(ctx, req.RunPrefix, args...)
		if err != nil {
			s.logger.Warn().Err(err).Str("prefix", req.RunPrefix).Msg("Preview command failed")
		}
		if len(output) > 0 {
			_, _ = s.out.Write(output)
			if output[len(output)-1] != '\n' {
				fmt.Fprintln(s.out)
			}
		}
	}

	fmt.Fprintf(s.out, "would copy %s to %s\n", req.SourceFile, req.TargetFile)
	s.logger.Info().
		Str("source", req.SourceFile).
		Str("target", req.TargetFile).
		Msg("Dry run, no files written")
	return nil
}

// copy reads the source and atomically replaces the target via a temp file
// and rename, so a concurrent reader sees either the old or the new content
// in full. Concurrent activation runs race benignly: last writer wins.
func (s *Syncer) copy(req types.SyncRequest) error {
	data, err := s.fs.ReadFile(req.SourceFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed,
			"failed to read %s", req.SourceFile)
	}

	tmpFile := fmt.Sprintf("%s.tmp.%d", req.TargetFile, os.Getpid())
	if err := s.fs.WriteFile(tmpFile, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed,
			"failed to write %s", tmpFile)
	}

	if err := s.fs.Rename(tmpFile, req.TargetFile); err != nil {
		_ = s.fs.Remove(tmpFile)
		return errors.Wrapf(err, errors.ErrCopyFailed,
			"failed to replace %s", req.TargetFile)
	}

	fmt.Fprintf(s.out, "copied %s to %s\n", req.SourceFile, req.TargetFile)
	if req.Verbose {
		fmt.Fprintf(s.out, "  %d bytes written\n", len(data))
	}
	s.logger.Info().
		Str("source", req.SourceFile).
		Str("target", req.TargetFile).
		Int("bytes", len(data)).
		Msg("Artifact synchronized")
	return nil
}

// checkDestWritable is the dry-run stand-in for the write itself. The real
// run skips it: the copy's own failure carries more context.
func (s *Syncer) checkDestWritable(targetFile string) error {
	destDir := filepath.Dir(targetFile)
	info, err := s.fs.Stat(destDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed,
			"destination directory %s is not accessible", destDir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrCopyFailed,
			"destination %s is not a directory", destDir)
	}
	if info.Mode().Perm()&0200 == 0 {
		return errors.Newf(errors.ErrCopyFailed,
			"destination directory %s is not writable", destDir)
	}
	return nil
}

func previewArgs(req types.SyncRequest) []string {
	args := []string{"cp"}
	if req.Verbose {
		args = append(args, "-v")
	}
	return append(args, req.SourceFile, req.TargetFile)
}

