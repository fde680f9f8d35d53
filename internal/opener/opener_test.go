package opener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"rayline/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runCall struct {
	name string
	args []string
}

func recordingRunner(calls *[]runCall, err error) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, runCall{name: name, args: args})
		return err
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"/a/b"}},
		{"freebsd", "xdg-open", []string{"/a/b"}},
		{"darwin", "open", []string{"/a/b"}},
		{"windows", "cmd", []string{"/c", "start", "", "/a/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := New(WithOS(tt.goos)).Command("/a/b")
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestOpen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	var calls []runCall
	o := New(WithOS("linux"), WithRunner(recordingRunner(&calls, nil)))

	require.NoError(t, o.Open(context.Background(), file, "File"))
	assert.Equal(t, []runCall{{name: "xdg-open", args: []string{file}}}, calls)
}

func TestOpenMissingPath(t *testing.T) {
	var calls []runCall
	o := New(WithRunner(recordingRunner(&calls, nil)))
	missing := filepath.Join(t.TempDir(), "gone.txt")

	err := o.Open(context.Background(), missing, "File")
	require.Error(t, err)
	assert.True(t, errors.IsOpenError(err))
	assert.True(t, errors.IsFileNotFound(err))

	var openErr *errors.OpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, missing, openErr.Path())
	assert.Equal(t, "File", openErr.EntryKind())
	assert.Empty(t, calls)

	err = o.Open(context.Background(), "", "App")
	assert.True(t, errors.IsOpenError(err))
}

func TestOpenRunnerFailure(t *testing.T) {
	dir := t.TempDir()
	var calls []runCall
	o := New(WithOS("darwin"), WithRunner(recordingRunner(&calls, fmt.Errorf("exec: not found"))))

	err := o.Open(context.Background(), dir, "Folder")
	require.Error(t, err)
	assert.True(t, errors.IsOpenError(err))
	assert.Contains(t, err.Error(), "Folder")
	assert.Contains(t, err.Error(), "exec: not found")
	assert.Len(t, calls, 1)
}

func TestStartProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, startProcess(ctx, "true"), context.Canceled)
}
