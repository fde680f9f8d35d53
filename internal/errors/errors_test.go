package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, errors.Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, errors.Unwrap(fileErr))

	assert.Equal(t, "file not found", ErrFileNotFound.Error())

	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))
	assert.True(t, IsFileAccessDenied(fileErr))
	assert.False(t, IsFileAccessDenied(notFoundErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "batch_size", InvalidConfig, nil)
	assert.Equal(t, "invalid value: batch_size", configErr.Error())
	assert.Equal(t, "batch_size", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))

	wrapped := fmt.Errorf("loading: %w", configErr)
	assert.True(t, IsInvalidConfig(wrapped))
	assert.False(t, IsInvalidConfig(errors.New("plain")))
}

func TestDataError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		err := NewDataError("malformed result", "name", "/docs/a.txt")
		assert.Equal(t, "malformed result: field=name id=/docs/a.txt", err.Error())
		assert.Equal(t, "name", err.Field())
		assert.Equal(t, "/docs/a.txt", err.ResultID())
		assert.Equal(t, InvalidResult, err.Kind())
		assert.True(t, IsDataError(err))
	})

	t.Run("without id", func(t *testing.T) {
		err := NewDataError("malformed result", "id", "")
		assert.Equal(t, "malformed result: field=id", err.Error())
	})

	t.Run("joined", func(t *testing.T) {
		joined := errors.Join(NewDataError("malformed result", "id", ""), New("other"))
		assert.True(t, IsDataError(joined))
	})
}

func TestOpenError(t *testing.T) {
	cause := fmt.Errorf("exit status 3")
	err := NewOpenError("/apps/notepad", "App", cause)
	assert.Equal(t, "failed to open App /apps/notepad: exit status 3", err.Error())
	assert.Equal(t, "/apps/notepad", err.Path())
	assert.Equal(t, "App", err.EntryKind())
	assert.True(t, IsOpenError(err))
	assert.True(t, Is(err, cause))
	assert.Equal(t, OpenFailed, KindOf(fmt.Errorf("launch: %w", err)))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, IndexFailed, KindOf(NewKind(IndexFailed, "walk failed", nil)))
	assert.Equal(t, InvalidConfig, KindOf(NewConfigError("bad", "theme.name", InvalidConfig, nil)))
	assert.Equal(t, "invalid_result", InvalidResult.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}
