// Package installer orchestrates the appliance's install and uninstall
// lifecycle: fetching the remote installer payloads, running them under the
// pty script runner, and seeding the ad-list store after a fresh install.
package installer

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/holectl/internal/services/appliance"
	"github.com/louisbranch/holectl/internal/services/script"
)

// Fetcher downloads a text resource.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// AdlistSyncer merges an ad-list source into the store.
type AdlistSyncer interface {
	Update(ctx context.Context, sourceFile string) (int, error)
}

// Installer composes the fetcher, script runner, ad-list syncer, and
// appliance CLI into the install and uninstall flows.
type Installer struct {
	Fetcher      Fetcher
	Runner       script.Runner
	Syncer       AdlistSyncer
	Appliance    appliance.CLI
	InstallURL   string
	UninstallURL string
}

// Install fetches and runs the appliance installer, then seeds the ad-list
// store and rebuilds gravity.
//
// The installer script runs with PIHOLE_SKIP_OS_CHECK=true so it does not
// refuse hosts outside its supported-OS list. A nonzero installer exit
// aborts before any ad-list insertion is attempted.
func (i *Installer) Install(ctx context.Context, sourceFile string) error {
	scriptText, err := i.Fetcher.Fetch(ctx, i.InstallURL)
	if err != nil {
		return err
	}

	code, err := i.Runner.Run(ctx, scriptText, map[string]string{"PIHOLE_SKIP_OS_CHECK": "true"})
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("installer script exited with status %d", code)
	}

	inserted, err := i.Syncer.Update(ctx, sourceFile)
	if err != nil {
		return err
	}
	log.Printf("install complete, %d ad-list sources configured", inserted)

	code, err = i.Appliance.RebuildGravity(ctx)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("gravity rebuild exited with status %d", code)
	}
	return nil
}

// Uninstall removes the appliance, degrading gracefully: the appliance's
// own uninstall subcommand runs first, and on a nonzero exit the remote
// uninstall script is fetched and run under the pty runner exactly once.
// There is no further fallback.
func (i *Installer) Uninstall(ctx context.Context) error {
	code, err := i.Appliance.Uninstall(ctx)
	if err == nil && code == 0 {
		return nil
	}
	if err != nil {
		log.Printf("appliance uninstall unavailable: %v", err)
	} else {
		log.Printf("appliance uninstall exited with status %d, falling back to remote uninstaller", code)
	}

	scriptText, err := i.Fetcher.Fetch(ctx, i.UninstallURL)
	if err != nil {
		return fmt.Errorf("uninstall fallback: %w", err)
	}

	code, err = i.Runner.Run(ctx, scriptText, nil)
	if err != nil {
		return fmt.Errorf("uninstall fallback: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("uninstall failed: remote uninstaller exited with status %d", code)
	}
	return nil
}
