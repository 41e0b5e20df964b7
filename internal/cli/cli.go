// Package cli implements the gringotts subcommands.
package cli

import (
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/app"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/service"
	"github.com/oakencore/gringotts/internal/storage"
)

// Commands lists every subcommand in registration order.
var Commands = []subcommands.Command{
	&addCmd{},
	&addBankCmd{},
	&listCmd{},
	&listMercuryCmd{},
	&setupMercuryCmd{},
	&removeCmd{},
	&queryCmd{},
	&queryOneCmd{},
}

// loadConfig reads the config file named by CONFIG_PATH, falling back to
// defaults when none exists. CLI runs work without any config file.
func loadConfig() *config.Config {
	_ = godotenv.Load()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Default()
	}
	return cfg
}

// newLogger builds a logger for CLI runs. Logs go to stderr so command
// output on stdout stays clean.
func newLogger(cfg *config.Config) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if err := zapCfg.Level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zapCfg.OutputPaths = []string{"stderr"}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func openStore() (*storage.FileStore, error) {
	return storage.NewFileStore(utils.GetEnv("ADDRESS_BOOK_PATH", ""))
}

func buildQueryService(cfg *config.Config) (*service.QueryService, *zap.Logger, error) {
	logger := newLogger(cfg)
	qs, _, err := app.BuildQueryService(cfg, utils.GetEnv("ADDRESS_BOOK_PATH", ""), logger)
	if err != nil {
		return nil, nil, err
	}
	return qs, logger, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
