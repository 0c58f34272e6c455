package activate_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/envsync/pkg/activate"
	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/filesystem"
	"github.com/arthur-debert/envsync/pkg/testutil"
	"github.com/arthur-debert/envsync/pkg/types"
)

const mountPath = "/mnt/c/Users"

func TestActivateNoMountIsSilentSkip(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/home/u/wezterm.lua", []byte("cfg"), 0644))

	var out bytes.Buffer
	result, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		FS:         filesystem.NewAferoFS(mem),
		Runner:     testutil.NewFakeCommander(),
		Out:        &out,
	})

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, out.String(), "a skipped run must be silent")
}

func TestActivateCopiesToDetectedUser(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(mountPath+"/Public", 0755))
	require.NoError(t, mem.MkdirAll(mountPath+"/alice", 0755))
	require.NoError(t, afero.WriteFile(mem, "/home/u/wezterm.lua", []byte("return {}"), 0644))
	fsys := filesystem.NewAferoFS(mem)

	var out bytes.Buffer
	result, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		FS:         fsys,
		Runner:     testutil.NewFakeCommander(),
		Out:        &out,
	})

	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.CandidateCount)
	require.NotNil(t, result.Destination)
	assert.Equal(t, mountPath+"/alice", result.Destination.UserDirectory)

	content, readErr := fsys.ReadFile(mountPath + "/alice/.wezterm.lua")
	require.NoError(t, readErr)
	assert.Equal(t, "return {}", string(content))
}

func TestActivateDryRunWritesNothing(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(mountPath+"/alice", 0755))
	require.NoError(t, afero.WriteFile(mem, "/home/u/wezterm.lua", []byte("return {}"), 0644))
	fsys := filesystem.NewAferoFS(mem)

	var out bytes.Buffer
	result, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		DryRun:     true,
		FS:         fsys,
		Runner:     testutil.NewFakeCommander(),
		Out:        &out,
	})

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Contains(t, out.String(), "would copy")

	_, statErr := fsys.Stat(mountPath + "/alice/.wezterm.lua")
	assert.Error(t, statErr, "dry run must not create the target")
}

// unreadableDirFS fails directory listings to simulate a mount that exists
// but cannot be read.
type unreadableDirFS struct {
	types.FS
}

func (u *unreadableDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return nil, stderrors.New("open " + name + ": permission denied")
}

func TestActivateUnreadableMountIsPermissionDenied(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(mountPath+"/alice", 0755))
	require.NoError(t, afero.WriteFile(mem, "/home/u/wezterm.lua", []byte("return {}"), 0644))

	_, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		FS:         &unreadableDirFS{FS: filesystem.NewAferoFS(mem)},
		Runner:     testutil.NewFakeCommander(),
		Out:        &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermissionDenied))
}

func TestActivateNoUsersFails(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(mountPath+"/Public", 0755))
	require.NoError(t, afero.WriteFile(mem, "/home/u/wezterm.lua", []byte("return {}"), 0644))

	_, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		FS:         filesystem.NewAferoFS(mem),
		Runner:     testutil.NewFakeCommander(),
		Out:        &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserDetectionFailed))
}

func TestActivateMissingSourceFails(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(mountPath+"/alice", 0755))

	_, err := activate.Activate(context.Background(), activate.Options{
		MountPath:  mountPath,
		SourceFile: "/home/u/wezterm.lua",
		TargetName: ".wezterm.lua",
		FS:         filesystem.NewAferoFS(mem),
		Runner:     testutil.NewFakeCommander(),
		Out:        &bytes.Buffer{},
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))
}
