package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrProcessFailed is returned when an invoked executable exits non-zero.
var ErrProcessFailed = errors.New("process exited non-zero")

// Runner executes an external command, blocking until it exits, and captures
// its combined output. The formatter, the config template fetcher and git all
// go through this interface, so every call site shares the same failure
// semantics and can be faked in tests without spawning real processes.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	log *log.Logger
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{log: log.WithPrefix("exec")}
}

// Run executes name with args in dir and a minimal environment. The process
// is always fully drained and its exit status observed before returning. On a
// non-zero exit the captured output is attached to the returned error.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir

	// the plugin sandbox guarantees nothing beyond PATH and HOME, so that is
	// all subprocesses get
	cmd.Env = []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
	}

	r.log.Debugf("executing: %s", cmd.String())

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf(
			"%w: '%s %s': %v\n%s",
			ErrProcessFailed, name, strings.Join(args, " "), err, out,
		)
	}

	return string(out), nil
}
