package insurance

import (
	"github.com/YuminosukeSato/medcost/linear"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// Predictor は読み込み済みの線形モデルで保険料を予測する
// 内部状態を変更しないので、並行に呼び出してよい。
type Predictor struct {
	model  *linear.Model
	logger log.Logger
}

// NewPredictor は m が保険の特徴量に対応していることを確認して Predictor を作る
// 特徴量名が記録されている場合は FeatureNames と同じ順序でなければならない。
func NewPredictor(m *linear.Model, logger log.Logger) (*Predictor, error) {
	if m == nil {
		return nil, errors.NewModelError("insurance.NewPredictor", "nil model", errors.ErrModelUnavailable)
	}
	if m.NFeatures() != NumFeatures {
		return nil, errors.NewDimensionError("insurance.NewPredictor", NumFeatures, m.NFeatures(), 1)
	}
	if names := m.FeatureNames(); names != nil {
		for i, name := range names {
			if name != featureNames[i] {
				return nil, errors.NewModelError("insurance.NewPredictor",
					"feature order mismatch at "+name+", want "+featureNames[i], nil)
			}
		}
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Predictor{
		model:  m,
		logger: logger.With(log.ComponentKey, "insurance"),
	}, nil
}

// Model は内部の線形モデルを返す
func (p *Predictor) Model() *linear.Model {
	return p.model
}

// Predict は入力を検証・エンコードしてから保険料を予測する
// 結果は丸めたり負値を切り上げたりしない。
func (p *Predictor) Predict(raw RawInput) (float64, error) {
	v, err := Encode(raw)
	if err != nil {
		var missing *errors.MissingFieldsError
		if errors.As(err, &missing) {
			p.logger.Warn("prediction rejected",
				log.OperationKey, log.OperationEncode,
				log.ErrorCodeKey, log.ErrorMissingFields,
				log.MissingFieldsKey, missing.Fields,
			)
		} else {
			p.logger.Warn("prediction rejected",
				log.OperationKey, log.OperationEncode,
				log.ErrorCodeKey, log.ErrorInvalidInput,
				"error", err,
			)
		}
		return 0, err
	}
	return p.PredictVector(v)
}

// PredictVector はエンコード済みのベクトルから予測する
func (p *Predictor) PredictVector(v FeatureVector) (float64, error) {
	pred, err := p.model.Predict(v[:])
	if err != nil {
		return 0, err
	}
	p.logger.Debug("prediction",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredictionKey, pred,
	)
	return pred, nil
}
