// Package shell runs external programs with an argument vector and captures
// their output. No shell is involved, so arguments are never re-quoted.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when a command has no program name.
var ErrEmptyCommand = errors.New("empty command")

// Result holds the captured output streams of a finished command.
type Result struct {
	Stdout string
	Stderr string
}

// Commander is an interface for executing commands.
// This allows mocking in tests.
type Commander interface {
	// Run executes name with args in dir. An empty dir means the current
	// working directory. Both streams are returned even when err is non-nil.
	Run(dir, name string, args ...string) (Result, error)
}

// ExecCommander executes real processes via os/exec.
type ExecCommander struct{}

// Run implements Commander.
func (ExecCommander) Run(dir, name string, args ...string) (Result, error) {
	if name == "" {
		return Result{}, ErrEmptyCommand
	}
	cmd := exec.Command(name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		// Include stderr in error for debugging
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			return res, fmt.Errorf("%w: %s", err, msg)
		}
		return res, err
	}
	return res, nil
}

// Split separates a configured command vector into program and arguments.
func Split(command []string) (string, []string, error) {
	if len(command) == 0 || command[0] == "" {
		return "", nil, ErrEmptyCommand
	}
	return command[0], append([]string(nil), command[1:]...), nil
}

// ExitCode extracts the process exit status from err, or -1 when err did
// not come from a process that ran to completion. A nil err yields 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
