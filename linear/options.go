package linear

import "github.com/YuminosukeSato/medcost/pkg/log"

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithLogger sets the logger used to report fitting
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}

// WithFeatureNames records the feature names carried into the fitted Model
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.Features = append([]string(nil), names...)
	}
}
