package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recmap/internal/config"
	"recmap/internal/store"
)

// app — состояние одного запуска CLI. Тесты подставляют st заранее.
type app struct {
	cfgPath string
	driver  string

	cfg config.Config
	log *zap.Logger
	st  store.Backend
	own bool // st открыт нами и закрывается в PostRun
	out io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "recmapctl",
		Short: "Inspect and fill the record store used by recmap",
		Long: `recmapctl works with raw hash records (exists/get/set/dump),
loads mapped entities (load) and seeds YAML fixtures (seed).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "config.json", "Path to config file (JSON or YAML)")
	root.PersistentFlags().StringVar(&a.driver, "store", "", "Override store driver (memory/redis/postgres/sqlite)")

	root.AddCommand(
		newExistsCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDumpCmd(a),
		newLoadCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadWithArgs(a.cfgPath, nil, io.Discard)
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.StoreDriver = a.driver
	}
	a.cfg = cfg
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}

	if a.log == nil {
		log, err := cfg.Logger()
		if err != nil {
			return err
		}
		a.log = log
	}
	if a.st == nil {
		st, err := store.Open(cmd.Context(), cfg, a.log)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
		}
		a.st, a.own = st, true
	}
	return nil
}

func (a *app) close() {
	if a.own && a.st != nil {
		_ = a.st.Close()
		a.st, a.own = nil, false
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
