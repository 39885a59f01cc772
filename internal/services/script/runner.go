// Package script executes opaque shell payloads fetched from the network.
// The payloads are the appliance's own installer and uninstaller scripts;
// only their exit status is interpreted.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/creack/pty"
)

// ErrInterpreterMissing reports that the shell interpreter needed to run a
// fetched script is not installed.
var ErrInterpreterMissing = errors.New("shell interpreter not found")

// Runner executes a shell payload and reports its exit status.
//
// A nonzero status is returned as (code, nil): running a failing script is
// not a runner failure, and callers must treat the code themselves.
type Runner interface {
	Run(ctx context.Context, scriptText string, env map[string]string) (int, error)
}

// PTYRunner runs scripts under a pseudo-terminal so installers that probe
// for a TTY keep their interactive prompts and progress output.
//
// The run is synchronous and unbounded: once the script starts, the parent
// blocks until the child exits and the context cannot interrupt it.
type PTYRunner struct {
	// Interpreter is the shell binary, "bash" when empty.
	Interpreter string

	// Output receives the child's terminal stream, os.Stdout when nil.
	Output io.Writer

	// Input feeds the child's terminal, os.Stdin when nil. Installer
	// scripts prompt through the pty, so operator input must reach it.
	Input io.Reader
}

// Run executes scriptText through the interpreter with env merged into the
// child's environment, and returns the child's exit status.
func (r *PTYRunner) Run(ctx context.Context, scriptText string, env map[string]string) (int, error) {
	interpreter := r.Interpreter
	if interpreter == "" {
		interpreter = "bash"
	}
	output := r.Output
	if output == nil {
		output = os.Stdout
	}
	input := r.Input
	if input == nil {
		input = os.Stdin
	}

	cmd := exec.Command(interpreter, "-c", scriptText)
	cmd.Env = append(os.Environ(), flattenEnv(env)...)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrInterpreterMissing, interpreter)
		}
		return 0, fmt.Errorf("start script under pty: %w", err)
	}
	defer func() {
		_ = ptmx.Close()
	}()

	// Forward input into the pty for the lifetime of the run so prompts
	// raised by the script can be answered. The copy ends when the pty
	// closes; a pending read on os.Stdin is abandoned with the process.
	go func() {
		_, _ = io.Copy(ptmx, input)
	}()

	// The pty master returns an I/O error once the child releases its side
	// of the terminal; that is the normal end-of-stream signal here.
	_, _ = io.Copy(output, ptmx)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("wait for script: %w", err)
	}
	return 0, nil
}

// flattenEnv turns the overlay into KEY=VALUE pairs in a stable order.
func flattenEnv(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+env[key])
	}
	return pairs
}

var _ Runner = (*PTYRunner)(nil)
