package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/config"
	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
)

var (
	rootCmd = &cobra.Command{
		Use:   "dctool",
		Short: "Decode and manage dive computer memory dumps",
		Long: `dctool decodes memory dumps downloaded from dive computers and keeps
the decoded dives in a local logbook.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			level, err := logrus.ParseLevel(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
			}
			logrus.SetLevel(level)
			appConfig = cfg
			return nil
		},
	}

	configPath string
	dataDir    string
	appConfig  *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "override the configured data directory")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// openLogbook opens the logbook under the configured data directory.
func openLogbook() (*logbook.Store, error) {
	if err := os.MkdirAll(appConfig.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return logbook.Open(filepath.Join(appConfig.DataDir, "logbook"))
}
