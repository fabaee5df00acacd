package launcher

import "runtime"

// Strategy turns an editor command and a target folder into the argv that
// starts the editor on the current host.
type Strategy interface {
	Name() string
	Argv(editor []string, target string) []string
}

// directStrategy execs the editor itself: `code <path>`.
type directStrategy struct{}

func (directStrategy) Name() string { return "direct" }

func (directStrategy) Argv(editor []string, target string) []string {
	argv := make([]string, 0, len(editor)+1)
	argv = append(argv, editor...)
	return append(argv, target)
}

// shellStrategy wraps the editor in a command interpreter: `cmd /c code <path>`.
// On Windows editors such as VS Code ship as .cmd shims that need cmd.exe.
type shellStrategy struct {
	shell []string
}

func (s shellStrategy) Name() string { return "shell" }

func (s shellStrategy) Argv(editor []string, target string) []string {
	argv := make([]string, 0, len(s.shell)+len(editor)+1)
	argv = append(argv, s.shell...)
	argv = append(argv, editor...)
	return append(argv, target)
}

// StrategyFor selects the launch strategy for an operating system name as
// reported by runtime.GOOS.
func StrategyFor(goos string) Strategy {
	if goos == "windows" {
		return shellStrategy{shell: []string{"cmd", "/c"}}
	}
	return directStrategy{}
}

// HostStrategy returns the strategy for the running host.
func HostStrategy() Strategy {
	return StrategyFor(runtime.GOOS)
}
