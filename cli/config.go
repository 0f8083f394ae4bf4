package cli

import (
	"github.com/spf13/cobra"

	"github.com/sstone1/concerto/config"
	"github.com/sstone1/concerto/logging"
)

// addConfigFlags registers the flags every subcommand that touches
// storage shares: where its config file lives, and overrides for the
// two settings a demo run most often wants to change without writing
// one.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to a TOML config file (optional).")
	cmd.Flags().String("db", "concerto.db", "Path to the root store's LevelDB directory.")
	cmd.Flags().String("vault-dir", ".", "Directory holding per-record vault files.")
}

// loadConfig resolves the effective config for a subcommand invocation:
// the named config file if --config was given, defaults otherwise,
// overridden by --db, plus a ready-to-use logger built from it.
func loadConfig(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	dbPath, _ := cmd.Flags().GetString("db")

	var conf *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		conf = loaded
	} else {
		conf = config.Default(dbPath)
	}

	if cmd.Flags().Changed("db") {
		conf.RootStorePath = dbPath
	}

	return conf, logging.New(conf.Logger), nil
}
