// Package medcost predicts yearly medical insurance charges from six personal
// attributes with an ordinary least squares linear regression model.
//
// The model is trained offline on the reference insurance dataset and stored
// as a small JSON artifact. At prediction time the six attributes are
// validated, ordinal encoded and combined with the fitted coefficients:
//
//	charge = intercept + Σ coef[i] * x[i]
//
// over the features [age, sex, bmi, children, smoker, region] with sex
// female=0 male=1, smoker no=0 yes=1 and region northeast=0, northwest=1,
// southeast=2, southwest=3.
//
// # Quick Start
//
//	m, err := linear.LoadModel("models/model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := insurance.NewPredictor(m, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	charge, err := p.Predict(insurance.RawInput{
//	    Age:      insurance.Int(30),
//	    BMI:      insurance.Float(25.0),
//	    Children: insurance.Int(2),
//	    Sex:      insurance.Male,
//	    Smoker:   insurance.CurrentSmoker,
//	    Region:   insurance.Northeast,
//	})
//	fmt.Println(insurance.PredictionMessage(charge))
//
// # Packages
//
//   - insurance: input types, validation, encoding and the Predictor
//   - linear: the immutable Model, its JSON artifact and the OLS trainer
//   - dataset: CSV and Parquet loading of the reference dataset
//   - charts: the five exploration charts (gonum/plot)
//   - web: HTML pages and the JSON prediction API (gorilla/mux)
//   - config: defaults, YAML, environment and .env resolution
//   - metrics: regression metrics (MSE, RMSE, MAE, MAPE, R²)
//   - core/model: estimator interfaces, gob snapshots and ModelWeights
//   - core/parallel: chunked parallel loops for batch work
//   - pkg/errors, pkg/log: structured errors and zerolog logging
//
// The medcost command (cmd/medcost) wires these together: serve, train,
// predict, charts and dataset subcommands.
package medcost
