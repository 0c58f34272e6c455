package sync_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/filesystem"
	syncpkg "github.com/arthur-debert/envsync/pkg/sync"
	"github.com/arthur-debert/envsync/pkg/testutil"
	"github.com/arthur-debert/envsync/pkg/types"
)

// readOnlyFS rejects all mutations to simulate an unwritable destination.
type readOnlyFS struct {
	types.FS
}

func (r *readOnlyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func (r *readOnlyFS) Rename(oldpath, newpath string) error {
	return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrPermission}
}

func newSyncer(out *bytes.Buffer) (*syncpkg.Syncer, *testutil.FakeCommander) {
	runner := testutil.NewFakeCommander()
	return syncpkg.New(filesystem.NewOS(), runner, out), runner
}

func TestSyncCopiesByteForByte(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "return { font_size = 12 }\n")
	target := filepath.Join(testutil.CreateDir(t, dir, "dest"), ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	})

	require.NoError(t, err)
	assert.Equal(t, "return { font_size = 12 }\n", testutil.ReadFile(t, target))
	assert.Contains(t, out.String(), "copied "+source+" to "+target)
}

func TestSyncOverwritesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "new content")
	target := testutil.CreateFile(t, dir, "dest/.wezterm.lua", "old content")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	})

	require.NoError(t, err)
	assert.Equal(t, "new content", testutil.ReadFile(t, target))
}

func TestSyncIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "stable content")
	target := filepath.Join(testutil.CreateDir(t, dir, "dest"), ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)
	req := types.SyncRequest{SourceFile: source, TargetFile: target}

	require.NoError(t, syncer.Sync(context.Background(), req))
	require.NoError(t, syncer.Sync(context.Background(), req))

	assert.Equal(t, "stable content", testutil.ReadFile(t, target))
}

func TestSyncLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "content")
	destDir := testutil.CreateDir(t, dir, "dest")
	target := filepath.Join(destDir, ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	require.NoError(t, syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	}))

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".wezterm.lua", entries[0].Name())
}

func TestSyncSourceMissing(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: filepath.Join(dir, "absent.lua"),
		TargetFile: filepath.Join(dir, "target"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))
	assert.Contains(t, err.Error(), "absent.lua")
}

func TestSyncSourceEmpty(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "empty.lua", "")
	target := filepath.Join(testutil.CreateDir(t, dir, "dest"), ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceEmpty))

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "empty source must not be deployed")
}

func TestSyncCopyFailureKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "new content")
	target := testutil.CreateFile(t, dir, "dest/.wezterm.lua", "old content")

	var out bytes.Buffer
	runner := testutil.NewFakeCommander()
	syncer := syncpkg.New(&readOnlyFS{FS: filesystem.NewOS()}, runner, &out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	assert.Contains(t, err.Error(), "permission")
	assert.Equal(t, "old content", testutil.ReadFile(t, target))
}

func TestSyncReadOnlyDestinationDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "content")
	destDir := testutil.CreateDir(t, dir, "dest")
	target := filepath.Join(destDir, ".wezterm.lua")

	require.NoError(t, os.Chmod(destDir, 0555))
	t.Cleanup(func() { _ = os.Chmod(destDir, 0755) })

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
}

func TestDryRunNeverWrites(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "content")
	destDir := testutil.CreateDir(t, dir, "dest")
	target := filepath.Join(destDir, ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
		DryRun:     true,
	})

	require.NoError(t, err)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the target")
	assert.Contains(t, out.String(), "would copy "+source+" to "+target)
}

func TestDryRunRunsPreviewPrefix(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "wezterm.lua", "content")
	target := filepath.Join(testutil.CreateDir(t, dir, "dest"), ".wezterm.lua")

	var out bytes.Buffer
	runner := testutil.NewFakeCommander()
	runner.Register("echo", "cp "+source+" "+target+"\n", 0, nil)
	syncer := syncpkg.New(filesystem.NewOS(), runner, &out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
		DryRun:     true,
		RunPrefix:  "echo",
	})

	require.NoError(t, err)
	require.Len(t, runner.Calls, 1)
	assert.Contains(t, runner.Calls[0], "echo cp")
	assert.Contains(t, out.String(), "would copy")
}

func TestDryRunValidationStillFails(t *testing.T) {
	dir := t.TempDir()
	source := testutil.CreateFile(t, dir, "empty.lua", "")
	target := filepath.Join(testutil.CreateDir(t, dir, "dest"), ".wezterm.lua")

	var out bytes.Buffer
	syncer, _ := newSyncer(&out)

	err := syncer.Sync(context.Background(), types.SyncRequest{
		SourceFile: source,
		TargetFile: target,
		DryRun:     true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceEmpty))
	assert.NotContains(t, out.String(), "would copy")
}
