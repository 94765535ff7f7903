package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benjivesterby/go-dsa/dsa"
	"github.com/benjivesterby/go-dsa/internal/config"
	"github.com/benjivesterby/go-dsa/internal/logger"
)

// Config file read when --config is not given, if present.
const defaultConfigPath = "dsa.yaml"

type app struct {
	// persistent flags
	configPath string
	envFile    string
	logLevel   string
	workers    int
	hash       string

	cfg *config.Config
	log *zap.Logger
	now func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:           "dsacli",
		Short:         "DSA key generation, file signing and signature verification",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file (default ./"+defaultConfigPath+" if present)")
	pf.StringVar(&a.envFile, "env-file", ".env", "file of DSA_* environment variables")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.IntVar(&a.workers, "workers", 0, "concurrent (p, q) search workers (0: derive from CPU count)")
	pf.StringVar(&a.hash, "hash", "", "message digest: sha512|sha3-512")

	root.AddCommand(a.keygenCmd(), a.signCmd(), a.verifyCmd())
	return root
}

// Load the environment file and the configuration, then apply the flags
// explicitly set on the command line.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return fmt.Errorf("env file %s: %w", a.envFile, err)
	}

	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if fl.Changed("workers") {
		cfg.Workers = a.workers
	}
	if fl.Changed("hash") {
		cfg.Hash = a.hash
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) engine() *dsa.Engine {
	return dsa.NewEngine(
		dsa.WithLogger(a.log),
		dsa.WithWorkers(a.cfg.Workers),
		dsa.WithWitnesses(a.cfg.Witnesses),
	)
}

func (a *app) printResult(cmd *cobra.Command, name string) {
	fmt.Fprintf(cmd.OutOrStdout(), "The result file is: %s\n", name)
}
