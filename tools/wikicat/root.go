package main

import (
	"github.com/dustin/go-wikicat/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// noConfig annotates commands that run without a language config.
const noConfig = "wikicat.noconfig"

type app struct {
	v   *viper.Viper
	cfg Config
	log *zap.SugaredLogger
}

func bindFlag(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string
	var debug bool

	root := &cobra.Command{
		Use:          "wikicat",
		Short:        "Build a labeled article corpus from MediaWiki dumps",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(debug)
			if err != nil {
				return err
			}
			a.log = log
			if cmd.Annotations[noConfig] != "" {
				return nil
			}

			a.cfg, err = loadConfig(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.log.Debugf("Config: %+v", a.cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "language config file (JSON, YAML or TOML)")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.String("data-dir", "local_data", "directory holding dumps and outputs")
	bindFlag(a.v, "data_dir", pf.Lookup("data-dir"))

	root.AddCommand(
		a.categoriesCmd(),
		a.resolveCmd(),
		a.articlesCmd(),
		a.samplesCmd(),
		a.lookupCmd(),
	)
	return root
}
