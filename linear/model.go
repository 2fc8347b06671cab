package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/medcost/core/parallel"
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// Model は学習済みの線形モデル（係数と切片）を保持する不変な値
// 一度構築したら変更されないため、複数のゴルーチンから同期なしで読み取れる
type Model struct {
	coef      []float64
	intercept float64
	features  []string
}

// NewModel は係数と切片から Model を構築する
// 引数のスライスはコピーされるので、呼び出し側が後で変更しても影響しない
func NewModel(coefficients []float64, intercept float64, features ...string) (*Model, error) {
	const op = "linear.NewModel"

	if len(coefficients) == 0 {
		return nil, errors.NewModelError(op, "no coefficients", errors.ErrEmptyData)
	}
	if len(features) > 0 && len(features) != len(coefficients) {
		return nil, errors.NewDimensionError(op, len(coefficients), len(features), 1)
	}
	if err := errors.CheckNumericalStability("coefficients", coefficients); err != nil {
		return nil, errors.NewModelError(op, "non-finite coefficient", err)
	}
	if err := errors.CheckScalar("intercept", intercept); err != nil {
		return nil, errors.NewModelError(op, "non-finite intercept", err)
	}

	m := &Model{
		coef:      make([]float64, len(coefficients)),
		intercept: intercept,
	}
	copy(m.coef, coefficients)
	if len(features) > 0 {
		m.features = make([]string, len(features))
		copy(m.features, features)
	}
	return m, nil
}

// Coefficients は係数のコピーを返す
func (m *Model) Coefficients() []float64 {
	out := make([]float64, len(m.coef))
	copy(out, m.coef)
	return out
}

// Intercept は切片を返す
func (m *Model) Intercept() float64 {
	return m.intercept
}

// NFeatures は係数の数を返す
func (m *Model) NFeatures() int {
	return len(m.coef)
}

// FeatureNames は学習時の特徴量名のコピーを返す（未設定なら nil）
func (m *Model) FeatureNames() []string {
	if m.features == nil {
		return nil
	}
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// Predict は intercept + Σ coef[i]*x[i] を計算する
// 加算は切片から始めて i の昇順に行うため、同じ入力には常に同じビット列の結果を返す
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, errors.NewDimensionError("Model.Predict", len(m.coef), len(x), 1)
	}

	pred := m.intercept
	for i, c := range m.coef {
		pred += c * x[i]
	}
	return pred, nil
}

// Predict は m.Predict(x) の関数形
func Predict(m *Model, x []float64) (float64, error) {
	return m.Predict(x)
}

// PredictBatch は行列の各行に対して予測を行う
func (m *Model) PredictBatch(X mat.Matrix) (*mat.VecDense, error) {
	r, c := X.Dims()
	if c != len(m.coef) {
		return nil, errors.NewDimensionError("Model.PredictBatch", len(m.coef), c, 1)
	}
	if r == 0 {
		return nil, errors.NewValueError("Model.PredictBatch", "empty matrix")
	}

	predictions := mat.NewVecDense(r, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := m.intercept
			for j, coef := range m.coef {
				pred += coef * X.At(i, j)
			}
			predictions.SetVec(i, pred)
		}
	})
	return predictions, nil
}
