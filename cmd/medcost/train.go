package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/linear"
	"github.com/YuminosukeSato/medcost/metrics"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

func newTrainCmd(a *app) *cobra.Command {
	var data, out string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the linear model on the dataset and write the model artifact",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if data == "" {
				data = a.cfg.DatasetPath
			}
			if out == "" {
				out = a.cfg.ModelPath
			}
			return a.runTrain(cmd, data, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&data, "data", "", "Training dataset (defaults to --dataset)")
	f.StringVar(&out, "out", "", "Output model path (defaults to --model)")
	return cmd
}

func (a *app) runTrain(cmd *cobra.Command, data, out string) error {
	table, err := dataset.Load(data)
	if err != nil {
		return err
	}
	X, y := table.Encode()

	lr := linear.NewLinearRegression(
		linear.WithLogger(a.logger),
		linear.WithFeatureNames(insurance.FeatureNames()...),
	)
	if err := lr.Fit(X, y); err != nil {
		return err
	}
	m, err := lr.Model()
	if err != nil {
		return err
	}
	if _, err := insurance.NewPredictor(m, a.logger); err != nil {
		return err
	}

	preds, err := m.PredictBatch(X)
	if err != nil {
		return err
	}
	report, err := metrics.Evaluate(mat.NewVecDense(table.Len(), table.Charges()), preds)
	if err != nil {
		return err
	}
	a.logger.Info("training metrics",
		log.OperationKey, log.OperationScore,
		log.R2ScoreKey, report.R2,
		log.RMSEKey, report.RMSE,
		log.MAEKey, report.MAE,
	)

	metadata := map[string]interface{}{
		"n_samples":  table.Len(),
		"dataset":    data,
		"trained_at": time.Now().UTC().Format(time.RFC3339),
		"r2":         report.R2,
		"rmse":       report.RMSE,
		"mae":        report.MAE,
	}
	if err := linear.SaveModel(out, m, metadata); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Trained on %d rows: R2=%.4f RMSE=%.2f MAE=%.2f\nModel written to %s\n",
		table.Len(), report.R2, report.RMSE, report.MAE, out)
	return nil
}
