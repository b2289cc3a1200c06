package logging

// Logger defines the leveled logging contract used across the docskit
// runtime. It mirrors the interface exposed by github.com/goliatone/go-logger
// so host applications can plug that package in without adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger. Providers that support this behaviour should return a
// new logger with the supplied fields applied on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when none is supplied. The module identifier is attached as
// a structured field so downstream entries can be filtered predictably.
func ModuleLogger(logger Logger, module string) Logger {
	if logger == nil {
		logger = NoOp()
	}
	if module == "" {
		return logger
	}
	if fl, ok := logger.(FieldsLogger); ok {
		return fl.WithFields(map[string]any{"module": module})
	}
	return logger
}

// NoOp returns a logger that discards every entry.
func NoOp() Logger {
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Trace(string, ...any) {}
func (noOpLogger) Debug(string, ...any) {}
func (noOpLogger) Info(string, ...any)  {}
func (noOpLogger) Warn(string, ...any)  {}
func (noOpLogger) Error(string, ...any) {}
func (noOpLogger) Fatal(string, ...any) {}
