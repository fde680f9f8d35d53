// Package errors provides standardized error handling for rayline.
// It defines the error kinds shared by the index engine, the palette and the
// hosts, plus helpers for consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidPath  = NewFileError("invalid file path", "", InvalidPath, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	// Result error kinds
	InvalidResult
	// Index and launch error kinds
	IndexFailed
	OpenFailed
)

var kindNames = map[ErrorKind]string{
	Unknown:          "unknown",
	FileNotFound:     "file_not_found",
	FileAccessDenied: "file_access_denied",
	InvalidPath:      "invalid_path",
	InvalidConfig:    "invalid_config",
	InvalidResult:    "invalid_result",
	IndexFailed:      "index_failed",
	OpenFailed:       "open_failed",
}

// String returns a stable name for the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// DataError reports a malformed result delivered by the index engine.
// The offending entry is dropped rather than stored.
type DataError struct {
	ApplicationError
	field    string
	resultID string
}

// NewDataError creates a new data error for the given field.
func NewDataError(msg string, field string, resultID string) *DataError {
	return &DataError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: InvalidResult,
		},
		field:    field,
		resultID: resultID,
	}
}

// Error returns the data error message
func (e *DataError) Error() string {
	switch {
	case e.resultID != "":
		return fmt.Sprintf("%s: field=%s id=%s", e.msg, e.field, e.resultID)
	case e.field != "":
		return fmt.Sprintf("%s: field=%s", e.msg, e.field)
	}
	return e.ApplicationError.Error()
}

// Field returns the name of the missing or invalid field
func (e *DataError) Field() string {
	return e.field
}

// ResultID returns the id of the rejected result, if it had one
func (e *DataError) ResultID() string {
	return e.resultID
}

// OpenError represents a failure to launch an entry
type OpenError struct {
	ApplicationError
	path string
	kind string
}

// NewOpenError creates a new open error
func NewOpenError(path string, kind string, err error) *OpenError {
	return &OpenError{
		ApplicationError: ApplicationError{
			msg:  "failed to open",
			err:  err,
			kind: OpenFailed,
		},
		path: path,
		kind: kind,
	}
}

// Error returns the open error message
func (e *OpenError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s %s %s: %v", e.msg, e.kind, e.path, e.err)
	}
	return fmt.Sprintf("%s %s %s", e.msg, e.kind, e.path)
}

// Path returns the path that failed to open
func (e *OpenError) Path() string {
	return e.path
}

// EntryKind returns the result kind that was being opened
func (e *OpenError) EntryKind() string {
	return e.kind
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error of a specific kind
func NewKind(kind ErrorKind, msg string, err error) error {
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain
func KindOf(err error) ErrorKind {
	type kinded interface{ Kind() ErrorKind }
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsDataError checks if the error is a malformed result error
func IsDataError(err error) bool {
	var dataErr *DataError
	return errors.As(err, &dataErr)
}

// IsOpenError checks if the error is a launch failure
func IsOpenError(err error) bool {
	var openErr *OpenError
	return errors.As(err, &openErr)
}
