// Package launcher opens a folder in an external editor process without
// waiting for the editor to exit.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"folderlist/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("launcher")

	// ErrLaunch marks a failure to locate or start the editor.
	ErrLaunch = errors.New("editor launch failed")

	// ErrNoEditor is the underlying cause when the editor command is blank.
	ErrNoEditor = errors.New("no editor command configured")
)

// DefaultEditor is the editor command used when none is configured.
const DefaultEditor = "code"

// Error describes a failed launch. errors.Is(err, ErrLaunch) is always true.
type Error struct {
	Op   string   // "lookpath" or "start"
	Argv []string // Command that was attempted
	Err  error    // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrLaunch, e.Op, strings.Join(e.Argv, " "), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrLaunch }

// Spawner starts a detached process from argv.
type Spawner interface {
	Spawn(argv []string) error
}

// ExecSpawner starts processes with os/exec.
type ExecSpawner struct{}

// Spawn resolves argv[0] on PATH, starts it with no stdio attached and
// returns as soon as the process exists. The child is reaped in the
// background so it never becomes a zombie.
func (ExecSpawner) Spawn(argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return &Error{Op: "lookpath", Argv: argv, Err: ErrNoEditor}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return &Error{Op: "lookpath", Argv: argv, Err: err}
	}

	cmd := exec.Command(path, argv[1:]...)
	if err := cmd.Start(); err != nil {
		return &Error{Op: "start", Argv: argv, Err: err}
	}
	logger.Debug("Started %q with pid %d", argv[0], cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("Editor process %d exited: %v", cmd.Process.Pid, err)
		}
	}()
	return nil
}

// Launcher opens folders in an editor.
type Launcher struct {
	editor   []string
	strategy Strategy
	spawner  Spawner
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithStrategy overrides the host-selected strategy.
func WithStrategy(s Strategy) Option {
	return func(l *Launcher) { l.strategy = s }
}

// WithSpawner replaces the process spawner.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) { l.spawner = s }
}

// New creates a Launcher for editor, a command line such as "code" or
// "code --new-window". A blank editor means DefaultEditor.
func New(editor string, opts ...Option) *Launcher {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = []string{DefaultEditor}
	}

	l := &Launcher{
		editor:   fields,
		strategy: HostStrategy(),
		spawner:  ExecSpawner{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Command returns the argv ResolveAndLaunch would run for folderName under rootPath.
func (l *Launcher) Command(rootPath, folderName string) []string {
	return l.strategy.Argv(l.editor, filepath.Join(rootPath, folderName))
}

// ResolveAndLaunch joins rootPath and folderName and starts the editor on the
// result. folderName is not checked against the filesystem; callers pass a
// name from a previous listing. It returns an ErrLaunch error if the editor
// cannot be found or started and never waits for the editor to exit.
func (l *Launcher) ResolveAndLaunch(rootPath, folderName string) error {
	argv := l.Command(rootPath, folderName)
	logger.Info("Opening %q with %s strategy: %s", folderName, l.strategy.Name(), strings.Join(argv, " "))

	if err := l.spawner.Spawn(argv); err != nil {
		logger.Error("Launch failed: %v", err)
		var launchErr *Error
		if errors.As(err, &launchErr) {
			return err
		}
		return &Error{Op: "start", Argv: argv, Err: err}
	}
	return nil
}
