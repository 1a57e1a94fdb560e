// Package logger provides the application-wide logging contract and its
// console and file implementations built on log/slog.
package logger

// Logger defines the logging interface
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
