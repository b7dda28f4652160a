// Package spawn runs external commands and hands their output to callbacks.
package spawn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Error describes a command that could not produce output
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return fmt.Sprintf("%s: No such file or directory", e.Command)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the executable is missing
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// Spawner starts argv in dir and calls onOutput once the process exited
type Spawner interface {
	Spawn(dir string, argv []string, onOutput func(output []byte, err error))
}

// Reader is the os/exec backed Spawner
type Reader struct {
	log *logrus.Entry
}

// NewReader creates a Reader that logs through log
func NewReader(log *logrus.Entry) *Reader {
	return &Reader{log: log.WithField("component", "spawn")}
}

// Spawn runs the command on its own goroutine
func (r *Reader) Spawn(dir string, argv []string, onOutput func(output []byte, err error)) {
	go func() {
		output, err := r.Read(context.Background(), dir, argv)
		onOutput(output, err)
	}()
}

// Read runs the command and returns its standard output. A non-zero exit
// status is only an error when nothing was written to standard output.
func (r *Reader) Read(ctx context.Context, dir string, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.WithField("argv", strings.Join(argv, " ")).Debug("Spawning command")

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	spawnErr := &Error{Command: argv[0], Stderr: strings.TrimSpace(stderr.String()), Err: err}
	if missingExecutable(err, dir, argv[0]) {
		spawnErr.Err = fmt.Errorf("%w: %w", exec.ErrNotFound, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		spawnErr.ExitCode = exitErr.ExitCode()
		if stdout.Len() > 0 {
			r.log.WithError(spawnErr).Warn("Command failed but produced output")
			return stdout.Bytes(), nil
		}
	}

	return nil, spawnErr
}

// missingExecutable reports whether err is an explicit executable path that
// does not exist. A missing dir fails the same way and is not counted.
func missingExecutable(err error, dir, name string) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || !errors.Is(err, fs.ErrNotExist) || pathErr.Path != name {
		return false
	}
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr != nil {
			return false
		}
	}
	return true
}
