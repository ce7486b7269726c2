package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elizafairlady/go-wheel/config"
	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/theme"
)

var (
	configPath string
	home       string
	logLevel   string

	cfg   *config.Config
	th    *theme.Theme
	store *entry.Store
)

func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wheel",
		Short:         "Spin a wheel of names",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(cfg.Level())

			th, err = cfg.BuildTheme()
			if err != nil {
				return err
			}
			fs, err := entry.NewFileStorage(cfg.Home)
			if err != nil {
				return err
			}
			store, err = entry.Open(fs, entry.DefaultKey)
			if err != nil {
				return fmt.Errorf("open names in %s: %w", cfg.Home, err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default from config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		addCmd(), rmCmd(), toggleCmd(), clearCmd(), lsCmd(),
		renderCmd(), spinCmd(), serveCmd(), ctlCmd(),
	)
	return root
}
