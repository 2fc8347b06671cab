package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/medcost/insurance"
)

type predictOutput struct {
	Charge    float64   `json:"charge"`
	Formatted string    `json:"formatted"`
	Features  []float64 `json:"features"`
}

func newPredictCmd(a *app) *cobra.Command {
	var (
		form   insurance.Form
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Predict the insurance charge for one person",
		Example: "  medcost predict --age 30 --sex male --bmi 25 --children 2 --smoker yes --region northeast",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPredict(cmd, form, asJSON)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Age, "age", "", "Age in years (0-120)")
	f.StringVar(&form.Sex, "sex", "", "Sex: female or male")
	f.StringVar(&form.BMI, "bmi", "", "Body mass index")
	f.StringVar(&form.Children, "children", "", "Number of children (0-10)")
	f.StringVar(&form.Smoker, "smoker", "", "Smoker: yes or no")
	f.StringVar(&form.Region, "region", "", "Region: northeast, northwest, southeast or southwest")
	f.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (a *app) runPredict(cmd *cobra.Command, form insurance.Form, asJSON bool) error {
	raw, err := form.RawInput()
	if err != nil {
		return err
	}
	v, err := insurance.Encode(raw)
	if err != nil {
		return err
	}

	predictor, err := a.loadPredictor()
	if err != nil {
		return err
	}
	charge, err := predictor.PredictVector(v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(predictOutput{
			Charge:    charge,
			Formatted: insurance.FormatCharge(charge),
			Features:  v.Slice(),
		})
	}
	fmt.Fprintln(out, insurance.PredictionMessage(charge))
	return nil
}
