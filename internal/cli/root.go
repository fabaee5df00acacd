// Package cli wires folderlist's components into a cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folderlist/internal/browser"
	"folderlist/internal/config"
	"folderlist/internal/launcher"
	"folderlist/internal/lister"
	"folderlist/internal/logging"
	"folderlist/internal/metrics"
	"folderlist/internal/state"

	"github.com/spf13/cobra"
)

var (
	logger = logging.GetLogger().WithPrefix("cli")

	errNoRoot = errors.New("no root path given and none remembered; pass a directory")
)

// app carries configuration and global flag values into the subcommands.
type app struct {
	cfg     *config.Config
	verbose bool
}

// NewRootCmd builds the folderlist command tree. Flags override cfg.
func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "folderlist",
		Short: "List subfolders with their timestamps and open them in an editor",
		Long: `folderlist lists the immediate subfolders of a directory together with
their creation and last modification times, and opens a chosen folder in an
external code editor (VS Code by default).

The last directory listed is remembered, so later commands can omit it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configureLogging()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (error, warn, info, debug, trace)")
	flags.StringVar(&cfg.StateFile, "state", cfg.StateFile, "Session file remembering the last root")
	flags.StringVar(&cfg.Editor, "editor", cfg.Editor, "Editor command used to open folders")

	cmd.AddCommand(
		a.newListCmd(),
		a.newOpenCmd(),
		a.newWatchCmd(),
		a.newMountCmd(),
		a.newRecentCmd(),
		NewVersionCmd(version),
	)
	return cmd
}

func (a *app) configureLogging() error {
	level, err := logging.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose && level < logging.LevelDebug {
		level = logging.LevelDebug
	}
	logging.GetLogger().SetLevel(level)
	return nil
}

// listerFlags are the listing options shared by list, open, watch and mount.
type listerFlags struct {
	sort    string
	onError string
}

func (a *app) addListerFlags(cmd *cobra.Command, lf *listerFlags) {
	cmd.Flags().StringVar(&lf.sort, "sort", string(a.cfg.Sort), "Order: name, created, modified or none")
	cmd.Flags().StringVar(&lf.onError, "on-error", string(a.cfg.OnMetadataError), "When a folder's metadata is unreadable: skip or fail")
}

func (a *app) newLister(cmd *cobra.Command, lf *listerFlags) (browser.Lister, error) {
	sortOrder, err := lister.ParseSortOrder(lf.sort)
	if err != nil {
		return nil, err
	}
	policy, err := lister.ParseMetadataPolicy(lf.onError)
	if err != nil {
		return nil, err
	}
	l := lister.New(lister.Options{
		Sort:            sortOrder,
		OnMetadataError: policy,
		OnSkip: func(name string, err error) {
			metrics.SkippedTotal.Inc()
			cmd.PrintErrf("warning: skipped %s: %v\n", name, err)
		},
	})
	return metrics.InstrumentLister(l), nil
}

func (a *app) newLauncher() *launcher.Launcher {
	return launcher.New(a.cfg.Editor)
}

// serveMetrics starts the /metrics endpoint when addr is set and returns the
// function that stops it.
func serveMetrics(addr string) func() {
	if addr == "" {
		return func() {}
	}
	srv := metrics.StartServer(addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Metrics server shutdown: %v", err)
		}
	}
}

// session opens the session file. A session that cannot be opened is logged
// and ignored; the commands still work with an explicit root.
func (a *app) session() *state.Manager {
	manager, err := state.NewManager(a.cfg.StateFile)
	if err != nil {
		logger.Warn("Session disabled: %v", err)
		return nil
	}
	return manager
}

// newBrowser builds the browser for root, or for the remembered root when
// root is empty.
func (a *app) newBrowser(root string, l browser.Lister, launch browser.Launcher) (*browser.Browser, error) {
	manager := a.session()

	if root == "" {
		if manager == nil {
			return nil, errNoRoot
		}
		session, err := manager.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}
		if session.LastRoot == "" {
			return nil, errNoRoot
		}
		root = session.LastRoot
		logger.Debug("Using remembered root %q", root)
	}

	var store browser.SessionStore
	if manager != nil {
		store = manager
	}
	b := browser.New(l, launch, store)
	if err := b.SetRoot(root); err != nil {
		return nil, err
	}
	return b, nil
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
