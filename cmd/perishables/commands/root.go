package commands

import (
	"github.com/spf13/cobra"

	"perishables/internal/config"
)

var (
	configPath string
	dbPath     string

	cfg       *config.Config
	cfgSource string
)

// Execute runs the CLI with os.Args
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "perishables",
		Short:        "Perishable goods inventory",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, cfgSource, err = config.LoadFromPath(configPath)
			} else {
				cfg, cfgSource, err = config.Load()
			}
			if err != nil {
				return err
			}

			// --db always means a SQLite file
			if dbPath != "" {
				cfg.Database.Driver = config.DriverSQLite
				cfg.Database.Path = dbPath
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search $PERISHABLES_CONFIG, ./perishables.yaml, ~/.config/perishables)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides the config file)")

	root.AddCommand(
		serveCmd(),
		initCmd(),
		seedCmd(),
		statsCmd(),
		expiringCmd(),
		exportCmd(),
		importCmd(),
		configCmd(),
	)
	return root
}
