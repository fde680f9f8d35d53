package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"rayline/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out   io.Writer
	json  bool
	file  string
	level string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends log lines to the file at path instead of the output writer.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithLevel sets the minimum level by name (debug, info, warn, error).
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// Logger is a structured logger backed by logrus.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a logger writing to stdout unless configured otherwise.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetOutput(o.out)

	var file *os.File
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", o.file, err)
		} else {
			file = f
			base.SetOutput(f)
		}
	}

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	base.SetLevel(logrus.InfoLevel)
	if isDebug {
		base.SetLevel(logrus.DebugLevel)
	}
	if o.level != "" {
		if lvl, err := logrus.ParseLevel(o.level); err == nil {
			base.SetLevel(lvl)
		}
	}

	return &Logger{entry: logrus.NewEntry(base), file: file}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(lf), file: l.file}
}

// WithError returns a child logger with the error expanded into fields.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var openErr *errors.OpenError
	if errors.As(err, &openErr) {
		fields = append(fields, F("path", openErr.Path()), F("kind", openErr.EntryKind()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var dataErr *errors.DataError
	if errors.As(err, &dataErr) {
		fields = append(fields, F("field", dataErr.Field()))
		if dataErr.ResultID() != "" {
			fields = append(fields, F("result_id", dataErr.ResultID()))
		}
	}
	return fields
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	next := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = next
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

// Default returns the package logger.
func Default() *Logger {
	return current()
}

// SetDebug toggles debug output on the package logger.
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	isDebug = debug
	if debug {
		logger.entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.entry.Logger.SetLevel(logrus.InfoLevel)
	}
}

// LogWithFields returns the package logger carrying fields.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger with err expanded into fields.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func Info(args ...interface{}) {
	current().Info(args...)
}

func Infof(format string, args ...interface{}) {
	current().Infof(format, args...)
}

func Debug(args ...interface{}) {
	current().Debug(args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Warn logs a warning message
func Warn(args ...interface{}) {
	current().Warn(args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs an error message
func Error(args ...interface{}) {
	current().Error(args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}
