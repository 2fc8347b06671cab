// Standard attribute keys. Keys follow a dotted hierarchy ("model.name",
// "data.samples") so log pipelines can filter on prefixes.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// ModelPathKey is the path of a persisted model artifact.
	ModelPathKey = "model.path"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "encode", "score", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "dataset", "web"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// DatasetPathKey is the path the reference dataset was read from.
	DatasetPathKey = "data.path"

	// DataFormatKey is the on-disk format of a dataset: "csv" or "parquet".
	DataFormatKey = "data.format"
)

// Performance and Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// RMSEKey records the root mean squared error of a regression.
	RMSEKey = "metrics.rmse"

	// MAEKey records the mean absolute error of a regression.
	MAEKey = "metrics.mae"
)

// Prediction Context
const (
	// PredictionKey records a single predicted value.
	PredictionKey = "preds.value"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// MissingFieldsKey lists the input fields that were unset at prediction time.
	MissingFieldsKey = "preds.missing_fields"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// HTTP Context
const (
	// RequestIDKey identifies a single HTTP request.
	RequestIDKey = "http.request_id"

	// MethodKey is the HTTP method.
	MethodKey = "http.method"

	// PathKey is the request path.
	PathKey = "http.path"

	// StatusKey is the response status code.
	StatusKey = "http.status"

	// PageKey is the page identifier being rendered.
	PageKey = "http.page"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationEncode  = "encode"
	OperationScore   = "score"
	OperationLoad    = "load"
	OperationRender  = "render"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorMissingFields     = "MISSING_FIELDS"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorIO                = "IO_FAILURE"
)
