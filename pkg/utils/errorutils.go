package utils

import (
	"fmt"
	"runtime"
	"strings"
)

// WrapIfNotNil prefixes err with the calling function's name and any extra context.
func WrapIfNotNil(err error, context ...string) error {
	if err == nil {
		return nil
	}

	callerName := "unknown"
	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			callerName = shortFuncName(fn.Name())
		}
	}

	parts := make([]string, 0, 1+len(context))
	parts = append(parts, callerName)
	parts = append(parts, context...)

	return fmt.Errorf("%s: %w", strings.Join(parts, " - "), err)
}

// Wrap marks err with a fixed operator-facing prefix such as
// "failed to upload file". Nil stays nil.
func Wrap(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

// shortFuncName drops the module path so messages stay readable on a terminal.
func shortFuncName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
