// Package logger is a small process-wide logging facade that fans every
// call out to the configured backends. It is safe to call before Init; the
// calls are simply dropped.
package logger

// LoggerInstance is the contract for logging backends.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []LoggerInstance

// Init configures the global logger with one or more backends. Call it once
// from main before anything logs.
func Init(instances ...LoggerInstance) {
	backends = instances
}

func each(fn func(LoggerInstance)) {
	for _, backend := range backends {
		fn(backend)
	}
}

// Log writes a message at the backend's default level.
func Log(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Log(message, keyvals...) })
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Debug(message, keyvals...) })
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Info(message, keyvals...) })
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Warn(message, keyvals...) })
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Error(message, keyvals...) })
}

// Fatal writes a message at FATAL level; backends are expected to terminate
// the process.
func Fatal(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Fatal(message, keyvals...) })
}
