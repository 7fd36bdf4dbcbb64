package render

import (
	"errors"
	"fmt"
)

var (
	ErrContextUnavailable = errors.New("render: no graphics context available")
	ErrTransientFrame     = errors.New("render: surface not drawable this frame")
	ErrSessionStopped     = errors.New("render: session stopped")
	ErrAlreadyStarted     = errors.New("render: session already started")
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("render: %v stage failed to compile: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link, or that linked without
// an input the session needs.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("render: failed to link program: %s", e.Log)
}
