package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no default-application command is
// known for the running operating system.
var ErrUnsupportedPlatform = errors.New("unsupported OS")

// Opener opens a file for the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Runner starts an external command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// System opens files with the platform's launcher: start on Windows, open on
// macOS, and xdg-open on Linux and the BSDs.
type System struct {
	goos string
	run  Runner
}

// Option configures a System opener.
type Option func(*System)

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(s *System) {
		s.goos = goos
	}
}

// WithRunner replaces the function that executes the launcher.
func WithRunner(run Runner) Option {
	return func(s *System) {
		if run != nil {
			s.run = run
		}
	}
}

// NewSystem creates a System opener for the running operating system.
func NewSystem(opts ...Option) *System {
	s := &System{
		goos: runtime.GOOS,
		run:  runCommand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open launches the default application for path.
func (s *System) Open(ctx context.Context, path string) error {
	name, args, err := Command(s.goos, path)
	if err != nil {
		return err
	}
	if err := s.run(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// Command returns the launcher and its arguments for goos.
func Command(goos, path string) (string, []string, error) {
	switch goos {
	case "windows":
		// The empty argument is the window title expected by start.
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
