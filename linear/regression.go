package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/medcost/core/model"
	"github.com/YuminosukeSato/medcost/core/parallel"
	"github.com/YuminosukeSato/medcost/metrics"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// LinearRegression は最小二乗法による線形回帰モデル
// 学習はオフラインで一度だけ行い、結果は Model として取り出して使う
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数
	NSamples  int           // 学習に使ったサンプル数
	Features  []string      // 特徴量名（オプション）

	logger log.Logger
}

var _ model.Estimator = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

func (lr *LinearRegression) getLogger() log.Logger {
	if lr.logger == nil {
		lr.logger = log.GetLogger()
	}
	return lr.logger.With(log.ModelNameKey, "LinearRegression", log.ComponentKey, "linear")
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")
	start := time.Now()

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if len(lr.Features) > 0 && len(lr.Features) != c {
		return errors.NewDimensionError("LinearRegression.Fit", len(lr.Features), c, 1)
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", X, r, c); err != nil {
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", y, ry, cy); err != nil {
		return err
	}

	// 切片項のために X に 1 の列を追加
	// X_with_intercept = [1, X]
	XWithIntercept := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		lr.getLogger().Error("Fit failed",
			errors.NewModelError("LinearRegression.Fit", "singular matrix", err),
			log.ErrorCodeKey, log.ErrorSingularMatrix,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	// 重みを計算: (X^T * X)^(-1) * X^T * y
	weights := mat.NewVecDense(c+1, nil)
	weights.MulVec(&XTXInv, &XTy)

	if err := errors.CheckNumericalStability("LinearRegression.Fit", weights.RawVector().Data); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "non-finite solution", err)
	}

	// 切片と重みを分離
	lr.Intercept = weights.AtVec(0)
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, weights.AtVec(i+1))
	}
	lr.NFeatures = c
	lr.NSamples = r
	lr.SetFitted()

	lr.getLogger().Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict は入力データに対する予測を行う（n×1 の行列を返す）
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	m, err := lr.Model()
	if err != nil {
		return nil, err
	}
	preds, err := m.PredictBatch(X)
	if err != nil {
		return nil, err
	}
	return preds, nil
}

// Model は学習結果を不変な Model として返す
func (lr *LinearRegression) Model() (*Model, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Model")
	}
	return NewModel(lr.Weights.RawVector().Data, lr.Intercept, lr.Features...)
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}
