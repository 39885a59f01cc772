// Package holectl parses CLI flags and dispatches holectl subcommands.
package holectl

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/holectl/internal/platform/cmd"
	"github.com/louisbranch/holectl/internal/platform/fetch"
	"github.com/louisbranch/holectl/internal/services/adlist"
	"github.com/louisbranch/holectl/internal/services/adlist/storage"
	"github.com/louisbranch/holectl/internal/services/adlist/storage/sqlite"
	"github.com/louisbranch/holectl/internal/services/appliance"
	"github.com/louisbranch/holectl/internal/services/installer"
	"github.com/louisbranch/holectl/internal/services/script"
)

// Usage describes the CLI surface for dispatch errors.
const Usage = "usage: holectl [flags] install|uninstall|update|status|add-adlist"

// Config holds holectl command configuration.
//
// Every endpoint and path the flows touch is resolved here, once, at
// startup; nothing reads the environment mid-operation.
type Config struct {
	DBPath       string `env:"HOLECTL_DB_PATH" envDefault:"/etc/pihole/gravity.db"`
	DBMemory     bool   `env:"HOLECTL_DB_MEMORY" envDefault:"false"`
	AdlistURL    string `env:"HOLECTL_ADLIST_URL" envDefault:"https://raw.githubusercontent.com/StevenBlack/hosts/master/hosts"`
	InstallURL   string `env:"HOLECTL_INSTALL_URL" envDefault:"https://install.pi-hole.net"`
	UninstallURL string `env:"HOLECTL_UNINSTALL_URL" envDefault:"https://raw.githubusercontent.com/pi-hole/pi-hole/master/automated%20install/uninstall.sh"`
	Interpreter  string `env:"HOLECTL_INTERPRETER" envDefault:"bash"`
	PiholeBinary string `env:"HOLECTL_PIHOLE_BIN" envDefault:"pihole"`

	// Source is an operator-supplied local ad-list file overriding AdlistURL.
	Source string

	// Command is the positional subcommand.
	Command string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The ad-list SQLite database path")
	fs.BoolVar(&cfg.DBMemory, "db-memory", cfg.DBMemory, "Use a transient in-memory database instead of db-path")
	fs.StringVar(&cfg.AdlistURL, "adlist-url", cfg.AdlistURL, "The canonical remote ad-list URL")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Local file of ad-list URLs overriding adlist-url")
	fs.StringVar(&cfg.Interpreter, "interpreter", cfg.Interpreter, "Shell interpreter for fetched scripts")
	fs.StringVar(&cfg.PiholeBinary, "pihole-bin", cfg.PiholeBinary, "The appliance CLI binary")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return Config{}, fmt.Errorf("expected exactly one subcommand\n%s", Usage)
	}
	cfg.Command = rest[0]
	return cfg, nil
}

// Run dispatches the configured subcommand.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceHolectl, func(ctx context.Context) error {
		return dispatch(ctx, cfg)
	})
}

func dispatch(ctx context.Context, cfg Config) error {
	fetcher := fetch.NewClient()
	runner := &script.PTYRunner{Interpreter: cfg.Interpreter}
	cli := &appliance.Pihole{Binary: cfg.PiholeBinary}
	syncer := &adlist.Syncer{
		Fetcher:   fetcher,
		OpenStore: openStore(cfg),
		SourceURL: cfg.AdlistURL,
	}
	install := &installer.Installer{
		Fetcher:      fetcher,
		Runner:       runner,
		Syncer:       syncer,
		Appliance:    cli,
		InstallURL:   cfg.InstallURL,
		UninstallURL: cfg.UninstallURL,
	}

	switch cfg.Command {
	case "install":
		return install.Install(ctx, cfg.Source)
	case "uninstall":
		return install.Uninstall(ctx)
	case "add-adlist":
		_, err := syncer.Update(ctx, cfg.Source)
		return err
	case "update":
		return requireZeroExit("appliance update")(cli.SelfUpdate(ctx))
	case "status":
		return requireZeroExit("appliance status")(cli.Status(ctx))
	default:
		return fmt.Errorf("unknown command %q\n%s", cfg.Command, Usage)
	}
}

// openStore defers opening the configured store until a flow needs it, so
// read-only subcommands never touch the database path.
func openStore(cfg Config) adlist.OpenStore {
	return func() (storage.Store, error) {
		if cfg.DBMemory {
			return sqlite.OpenMemory()
		}
		return sqlite.Open(cfg.DBPath)
	}
}

// requireZeroExit converts a nonzero appliance exit into a failure.
func requireZeroExit(operation string) func(int, error) error {
	return func(code int, err error) error {
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("%s exited with status %d", operation, code)
		}
		return nil
	}
}
