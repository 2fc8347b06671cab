package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/linear"
	"github.com/YuminosukeSato/medcost/pkg/log"
	"github.com/YuminosukeSato/medcost/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface and prediction API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.flags.Addr, "addr", "", "Listen address (default :8080)")
	f.Float64Var(&a.flags.PredictRate, "rate", 0, "Prediction API requests per second")
	f.IntVar(&a.flags.PredictBurst, "burst", 0, "Prediction API burst size")
	return cmd
}

// runServe starts the server even when the model or dataset cannot be
// loaded; the affected pages report the failure instead.
func (a *app) runServe(cmd *cobra.Command) error {
	opts := web.Options{
		Addr:         a.cfg.Addr,
		Logger:       a.logger,
		PredictRate:  a.cfg.PredictRate,
		PredictBurst: a.cfg.PredictBurst,
	}

	predictor, err := a.loadPredictor()
	if err != nil {
		a.logger.Error("model unavailable", err, log.ModelPathKey, a.cfg.ModelPath)
		opts.ModelErr = err
	}
	opts.Predictor = predictor

	table, err := dataset.Load(a.cfg.DatasetPath)
	if err != nil {
		a.logger.Error("dataset unavailable", err, log.DatasetPathKey, a.cfg.DatasetPath)
		opts.DatasetErr = err
	}
	opts.Dataset = table

	srv, err := web.New(opts)
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context())
}

func (a *app) loadPredictor() (*insurance.Predictor, error) {
	m, err := linear.LoadModel(a.cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("model loaded",
		log.OperationKey, log.OperationLoad,
		log.ModelPathKey, a.cfg.ModelPath,
		log.FeaturesKey, m.NFeatures(),
	)
	return insurance.NewPredictor(m, a.logger)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return newUsageError(err)
	}
	return nil
}
