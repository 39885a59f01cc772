// Package appliance invokes the Pi-hole CLI as a subprocess. The appliance
// owns its own output; stdio is inherited so the operator sees it directly,
// and only the exit code is inspected.
package appliance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CLI is the subset of appliance operations the tool drives.
type CLI interface {
	Status(ctx context.Context) (int, error)
	RebuildGravity(ctx context.Context) (int, error)
	SelfUpdate(ctx context.Context) (int, error)
	Uninstall(ctx context.Context) (int, error)
}

// Pihole shells out to the installed pihole binary.
type Pihole struct {
	// Binary is the appliance executable, "pihole" when empty.
	Binary string
}

// Status reports whether the appliance's blocking is active.
func (p *Pihole) Status(ctx context.Context) (int, error) {
	return p.run(ctx, "status")
}

// RebuildGravity regenerates the appliance's blocklists from the stored
// ad-list subscriptions.
func (p *Pihole) RebuildGravity(ctx context.Context) (int, error) {
	return p.run(ctx, "-g")
}

// SelfUpdate runs the appliance's own updater.
func (p *Pihole) SelfUpdate(ctx context.Context) (int, error) {
	return p.run(ctx, "-up")
}

// Uninstall runs the appliance's own uninstaller.
func (p *Pihole) Uninstall(ctx context.Context) (int, error) {
	return p.run(ctx, "uninstall")
}

// run executes the appliance binary with inherited stdio and returns its
// exit code. A nonzero exit is (code, nil); only spawn failures are errors.
func (p *Pihole) run(ctx context.Context, args ...string) (int, error) {
	binary := p.Binary
	if binary == "" {
		binary = "pihole"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("run %s %s: %w", binary, strings.Join(args, " "), err)
	}
	return 0, nil
}

var _ CLI = (*Pihole)(nil)
