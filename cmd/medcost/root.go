package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/medcost/config"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// app carries the resolved configuration and logger into subcommands.
type app struct {
	configFile string
	flags      config.Config
	cfg        config.Config
	logger     log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "medcost",
		Short:         "Medical insurance charge prediction",
		Long:          "Predicts yearly medical insurance charges with a linear regression model and serves the prediction form and dataset exploration pages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.StringVar(&a.flags.ModelPath, "model", "", "Path to the model artifact (JSON)")
	pf.StringVar(&a.flags.DatasetPath, "dataset", "", "Path to the reference dataset (.csv or .parquet)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(
		newServeCmd(a),
		newTrainCmd(a),
		newPredictCmd(a),
		newChartsCmd(a),
		newDatasetCmd(a),
	)
	return root
}

// setup resolves configuration with the precedence defaults < file < env < flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, ".env")
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("model", &cfg.ModelPath, a.flags.ModelPath)
	override("dataset", &cfg.DatasetPath, a.flags.DatasetPath)
	override("log-level", &cfg.LogLevel, a.flags.LogLevel)
	override("log-format", &cfg.LogFormat, a.flags.LogFormat)
	override("addr", &cfg.Addr, a.flags.Addr)
	override("out-dir", &cfg.ChartDir, a.flags.ChartDir)
	if flags.Changed("rate") {
		cfg.PredictRate = a.flags.PredictRate
	}
	if flags.Changed("burst") {
		cfg.PredictBurst = a.flags.PredictBurst
	}

	if err := cfg.Validate(); err != nil {
		return newUsageError(err)
	}
	logger, err := log.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return newUsageError(err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
