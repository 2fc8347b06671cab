package model

import (
	"encoding/json"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
// 学習済みモデルの成果物はこの形式のJSONとして保存される
type ModelWeights struct {
	// ModelType はモデルの種類（LinearRegression）
	ModelType string `json:"model_type"`

	// Version は成果物フォーマットのバージョン
	Version string `json:"version"`

	// Coefficients は重み係数（Features と同じ順序）
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.NewModelError("ModelWeights.FromJSON", "malformed artifact", err)
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	const op = "ModelWeights.Validate"

	if mw.ModelType == "" {
		return errors.NewModelError(op, "model_type is required", nil)
	}
	if mw.Version == "" {
		return errors.NewModelError(op, "version is required", nil)
	}
	if !mw.IsFitted {
		return errors.NewNotFittedError(mw.ModelType, "Load")
	}
	if len(mw.Coefficients) == 0 {
		return errors.NewModelError(op, "fitted model must have coefficients", nil)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError(op, len(mw.Features), len(mw.Coefficients), 1)
	}
	if err := errors.CheckNumericalStability("coefficients", mw.Coefficients); err != nil {
		return errors.NewModelError(op, "non-finite coefficient", err)
	}
	if err := errors.CheckScalar("intercept", mw.Intercept); err != nil {
		return errors.NewModelError(op, "non-finite intercept", err)
	}
	return nil
}
