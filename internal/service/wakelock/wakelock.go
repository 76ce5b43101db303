package wakelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/oshokin/fliptime/internal/logger"
)

// reason is shown by the OS tools that list active inhibitors.
const reason = "Displaying the flip clock"

// ErrUnsupportedOS indicates the current OS has no supported inhibitor tool.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Lock is a held wake lock backed by a helper process.
type Lock struct {
	// cmd is the inhibitor process; the lock lasts as long as it runs.
	cmd *exec.Cmd
}

// command returns the inhibitor invocation for goos:
// - Linux:  `systemd-inhibit --what=idle ... sleep infinity`
// - macOS:  `caffeinate -d -w <pid>` (exits together with this process)
// Other systems are unsupported.
func command(goos string, pid int) (string, []string, error) {
	switch strings.ToLower(goos) {
	case "linux":
		return "systemd-inhibit", []string{
			"--what=idle",
			"--who=fliptime",
			"--why=" + reason,
			"--mode=block",
			"sleep", "infinity",
		}, nil
	case "darwin":
		return "caffeinate", []string{"-d", "-w", strconv.Itoa(pid)}, nil
	default:
		return "", nil, fmt.Errorf("%s: %w", goos, ErrUnsupportedOS)
	}
}

// Acquire starts the inhibitor without waiting for it. The process is killed
// when ctx is canceled or Release is called.
func Acquire(ctx context.Context) (*Lock, error) {
	name, args, err := command(runtime.GOOS, os.Getpid())
	if err != nil {
		return nil, err
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	logger.DebugKV(ctx, "Wake lock acquired", "tool", name, "pid", cmd.Process.Pid)

	return &Lock{cmd: cmd}, nil
}

// Release stops the inhibitor. It is safe on a nil Lock.
func (l *Lock) Release() {
	if l == nil || l.cmd == nil || l.cmd.Process == nil {
		return
	}

	_ = l.cmd.Process.Kill()
	_ = l.cmd.Wait()
}
