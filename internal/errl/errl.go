// Package errl annotates errors with the source location of the caller,
// so log lines point at the place where the error was first handled.
package errl

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Error returns err annotated with the file and line of the caller.
// A nil err returns nil.
func Error(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", location(2), err)
}

// Errorf builds an error like fmt.Errorf and annotates it with the file and
// line of the caller. The %w verb is supported.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", location(2), fmt.Errorf(format, args...))
}

func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
