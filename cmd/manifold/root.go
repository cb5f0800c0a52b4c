// Root command for the manifold CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediaforge/manifold/internal/memory"
	"github.com/mediaforge/manifold/internal/paths"
	"github.com/mediaforge/manifold/internal/sqlite"
	"github.com/mediaforge/manifold/pkg/hybrid"
	"github.com/mediaforge/manifold/pkg/manager"
	"github.com/mediaforge/manifold/pkg/manifold"
	"github.com/mediaforge/manifold/pkg/registry"
	"github.com/mediaforge/manifold/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// session is the initialized manager middleware, built by
// PersistentPreRunE for every command that touches a manager.
var session *manager.Manager

// sqliteBackend is set when the SQLite manager is configured; relate
// needs its link-writing surface, which is not part of the manager
// contract.
var sqliteBackend *sqlite.Manager

var rootCmd = &cobra.Command{
	Use:     "manifold",
	Short:   "Manifold is an asset-management interoperability layer",
	Version: manifold.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version and help need no manager session.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)

		return buildSession(cfg)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if sqliteBackend != nil {
			return sqliteBackend.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.manifold-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(traitsCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(relateCmd)
	rootCmd.AddCommand(relatedCmd)
}

// newLogger builds the CLI logger; --verbose lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newRegistry returns the registry of built-in manager factories.
func newRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := reg.Register(sqlite.Identifier, func() types.ManagerInterface { return sqlite.NewManager() }); err != nil {
		return nil, err
	}
	if err := reg.Register(memory.Identifier, func() types.ManagerInterface { return memory.NewManager() }); err != nil {
		return nil, err
	}
	return reg, nil
}

// buildSession instantiates the configured managers, composes them into
// a hybrid when more than one is listed, and initializes the session.
func buildSession(cfg *viper.Viper) error {
	log := newLogger()

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	identifiers := cfg.GetStringSlice(cfgKeyManagers)
	if len(identifiers) == 0 {
		identifiers = []string{sqlite.Identifier}
	}

	impls := make([]types.ManagerInterface, 0, len(identifiers))
	for _, identifier := range identifiers {
		impl, err := reg.Instantiate(identifier)
		if err != nil {
			return fmt.Errorf("%w: available managers: %v", err, reg.Identifiers())
		}
		if backend, ok := impl.(*sqlite.Manager); ok {
			sqliteBackend = backend
		}
		impls = append(impls, impl)
	}

	var impl types.ManagerInterface
	if len(impls) == 1 {
		impl = impls[0]
	} else {
		impl, err = hybrid.New(impls, log)
		if err != nil {
			return err
		}
	}

	session, err = manager.New(impl, log)
	if err != nil {
		return err
	}

	settings, err := managerSettings(cfg)
	if err != nil {
		return err
	}
	return session.Initialize(settings)
}

// managerSettings assembles the Initialize settings map from
// config.yaml, filling in the SQLite database path from the resolved
// data directory when the configuration does not pin one.
func managerSettings(cfg *viper.Viper) (map[string]any, error) {
	settings := cfg.GetStringMap(cfgKeySettings)
	if settings == nil {
		settings = map[string]any{}
	}

	if _, ok := settings[sqlite.SettingDatabasePath]; !ok {
		dataDir, err := resolveDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		settings[sqlite.SettingDatabasePath] = filepath.Join(dataDir, "manifold.db")
	}
	return settings, nil
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > MANIFOLD_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > MANIFOLD_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
